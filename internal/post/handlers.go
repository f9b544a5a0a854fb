package post

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		image, err := formFileBytes(c, "image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		file, err := formFileBytes(c, "file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		created, err := svc.Publish(c.Context(), PublishInput{
			Text:  c.FormValue("text"),
			Image: image,
			File:  file,
		})
		if errors.Is(err, ErrTextRequired) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		posts, err := svc.Feed(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if posts == nil {
			posts = []Post{}
		}
		return c.JSON(posts)
	})
}

// formFileBytes reads an optional multipart part, returning nil when the
// part is simply absent.
func formFileBytes(c *fiber.Ctx, name string) ([]byte, error) {
	header, err := c.FormFile(name)
	if err != nil {
		return nil, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
