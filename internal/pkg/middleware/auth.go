package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/linvex-software/lvx-ecommerce/internal/pkg/usercontext"
)

// RequireAuth ensures an authenticated staff user and returns JSON 401 otherwise.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}
	return c.Next()
}

// RequireOperator ensures the authenticated user may trigger operator
// actions (webhook retries, manual stock moves).
func RequireOperator(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}
	if !userCtx.IsOperator {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "operator role required",
		})
	}
	return c.Next()
}
