package handlers

import (
	"strconv"

	"community-wins-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboardService *services.LeaderboardService) {
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "100"))

		entries, err := leaderboardService.List(c.Context(), limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"leaderboard": entries})
	})

	app.Get("/leaderboard/snapshots", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "100"))

		rows, err := leaderboardService.ListSnapshots(limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"snapshots": rows})
	})
}
