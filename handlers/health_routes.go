package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupHealthRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
