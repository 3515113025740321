package handlers

import (
	"community-wins-system/pkg/logger"
	"community-wins-system/services"

	"github.com/gofiber/fiber/v2"
)

// SignatureHeader carries the platform's HMAC-SHA256 signature of the body.
const SignatureHeader = "X-Whop-Signature"

func SetupWebhookRoutes(app *fiber.App, webhookService *services.WebhookService) {
	app.Post("/webhooks", func(c *fiber.Ctx) error {
		body := c.Body()

		if !webhookService.ValidateSignature(body, c.Get(SignatureHeader)) {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid webhook")
		}

		// Past this point the platform must never re-deliver: classification
		// and handler failures are logged, the response stays 200.
		event, err := services.ClassifyPayload(body)
		if err != nil {
			logger.Warnf("webhook payload rejected: %v", err)
			return c.SendString("OK")
		}

		webhookService.Dispatch(event)
		return c.SendString("OK")
	})
}
