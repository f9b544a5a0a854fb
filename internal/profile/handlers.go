package profile

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, store *Store) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(store.Snapshot(c.Context()))
	})

	r.Put("/", func(c *fiber.Ctx) error {
		var req Profile
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		store.Save(c.Context(), req)
		return c.JSON(store.Snapshot(c.Context()))
	})
}
