package blob

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, store *PgStore) {
	r.Get("/+", func(c *fiber.Ctx) error {
		data, contentType, err := store.Open(c.Context(), c.Params("+"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "blob not found")
		}
		c.Set(fiber.HeaderContentType, contentType)
		return c.Send(data)
	})
}
