package middleware

import (
	"strings"

	"community-wins-system/services"

	"github.com/gofiber/fiber/v2"
)

// BearerToken pulls the access token out of the Authorization header.
// Accepts a raw token for clients that omit the Bearer prefix.
func BearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return strings.TrimSpace(token)
}

// SessionMiddleware resolves the bearer token to an unexpired session and
// attaches the identity to the request context. Routes behind it get 401
// when no valid session exists.
func SessionMiddleware(store *services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		// Get evicts expired sessions, so a non-nil session is valid.
		sess := store.Get(c.Context(), token)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		c.Locals("session", sess)
		c.Locals("user_id", sess.User.ID)
		c.Locals("username", sess.User.Username)
		return c.Next()
	}
}
