package handlers

import (
	"community-wins-system/middleware"
	"community-wins-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	app.Post("/auth", func(c *fiber.Ctx) error {
		var req struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.AccessToken == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Access token is required"})
		}

		user, _, err := authService.Authenticate(c.Context(), req.AccessToken, req.RefreshToken)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"user": fiber.Map{
				"id":       user.UserID,
				"username": user.Username,
				"role":     user.Role,
				"points":   user.Points,
				"badge":    user.Badge,
			},
		})
	})

	app.Delete("/auth", func(c *fiber.Ctx) error {
		authService.Logout(c.Context(), middleware.BearerToken(c))
		return c.JSON(fiber.Map{"success": true})
	})
}
