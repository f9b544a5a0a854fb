package composer

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:session", func(c *fiber.Ctx) error {
		st, err := svc.State(c.Context(), c.Params("session"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(st)
	})

	r.Put("/:session/text", func(c *fiber.Ctx) error {
		var body struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		st, err := svc.SetText(c.Context(), c.Params("session"), body.Text)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(st)
	})

	r.Post("/:session/image", func(c *fiber.Ctx) error {
		return attachHandler(c, svc, "image")
	})

	r.Post("/:session/file", func(c *fiber.Ctx) error {
		return attachHandler(c, svc, "file")
	})

	r.Post("/:session/publish", func(c *fiber.Ctx) error {
		st, err := svc.Publish(c.Context(), c.Params("session"))
		if errors.Is(err, ErrPublishInFlight) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusAccepted).JSON(st)
	})
}

func attachHandler(c *fiber.Ctx, svc *Service, kind string) error {
	header, err := c.FormFile(kind)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, kind+" part required")
	}
	f, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var st State
	if kind == "image" {
		st, err = svc.AttachImage(c.Context(), c.Params("session"), data)
	} else {
		st, err = svc.AttachFile(c.Context(), c.Params("session"), data)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(st)
}
