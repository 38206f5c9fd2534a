package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/selene/internal/logger"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// internalError logs err with the request context and answers with a generic
// message.
func internalError(c *fiber.Ctx, err error, message string) error {
	logger.Log.WithError(err).WithField("path", c.Path()).Error(message)
	return apiError(c, fiber.StatusInternalServerError, message)
}
