package handlers

import (
	"strconv"

	"community-wins-system/middleware"
	"community-wins-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBountyRoutes(app *fiber.App, bountyService *services.BountyService, sessions *services.SessionStore) {
	app.Post("/bounties", middleware.SessionMiddleware(sessions), func(c *fiber.Ctx) error {
		var req services.BountyInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		bounty, err := bountyService.Create(c.Locals("user_id").(string), req)
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(spread(bounty, fiber.Map{"success": true, "id": bounty.ID}))
	})

	app.Get("/bounties", func(c *fiber.Ctx) error {
		status := c.Query("status", "active")
		limit, _ := strconv.Atoi(c.Query("limit", "50"))

		bounties, err := bountyService.List(status, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"bounties": bounties})
	})
}
