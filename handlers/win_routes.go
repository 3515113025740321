package handlers

import (
	"strconv"

	"community-wins-system/middleware"
	"community-wins-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWinRoutes(app *fiber.App, winService *services.WinService, reviewService *services.ReviewService, sessions *services.SessionStore) {
	app.Post("/wins", middleware.SessionMiddleware(sessions), func(c *fiber.Ctx) error {
		var req services.WinInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		userID := c.Locals("user_id").(string)
		username := c.Locals("username").(string)

		win, err := winService.Create(userID, username, req)
		if err != nil {
			return respondError(c, err)
		}

		// The record's fields sit at the top level of the body.
		return c.JSON(spread(win, fiber.Map{"success": true, "id": win.ID}))
	})

	app.Get("/wins", func(c *fiber.Ctx) error {
		status := c.Query("status")
		limit, _ := strconv.Atoi(c.Query("limit", "50"))

		wins, err := winService.List(status, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"wins": wins})
	})

	app.Post("/wins/:winId/review", func(c *fiber.Ctx) error {
		var req struct {
			Action string `json:"action"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		// TODO: require a creator-role session here once roles arrive on the
		// platform token; until then an anonymous review is stamped generically.
		reviewer := "creator"
		if sess := sessions.Get(c.Context(), middleware.BearerToken(c)); sess != nil {
			reviewer = sess.User.ID
		}

		outcome, err := reviewService.Review(c.Params("winId"), req.Action, reviewer)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"action":  outcome.Action,
		})
	})
}
