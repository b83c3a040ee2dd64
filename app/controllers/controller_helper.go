package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/linvex-software/lvx-ecommerce/internal/pkg/apperror"
)

// respondError maps a workflow error to its HTTP response. Controllers are
// the only place error kinds become status codes.
func respondError(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)

	code := "internal_server_error"
	switch status {
	case fiber.StatusNotFound:
		code = "not_found"
	case fiber.StatusBadRequest:
		code = "invalid_operation"
	case fiber.StatusUnauthorized:
		code = "unauthorized"
	}

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		// Internal detail stays in the logs, not the response body.
		message = "internal server error"
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}
