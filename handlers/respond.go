package handlers

import (
	"encoding/json"

	"community-wins-system/pkg/apperrors"
	"community-wins-system/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// spread flattens a record's JSON fields into the top level of the response
// body, with extra keys merged over them.
func spread(record interface{}, extra fiber.Map) fiber.Map {
	out := fiber.Map{}
	if data, err := json.Marshal(record); err == nil {
		_ = json.Unmarshal(data, &out)
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// respondError maps the error taxonomy onto HTTP statuses. Integration
// details go to the log; the caller only sees the generic message.
func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		logger.Errorf("request failed: %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": apperrors.PublicMessage(err),
	})
}
