package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/linvex-software/lvx-ecommerce/internal/pkg/storecontext"
)

// HandleWebhookRetry re-attempts processing of a stored webhook event. The
// attempt counter increments whether or not the retry succeeds; the caller
// sees the resulting terminal status, never a handler error.
func HandleWebhookRetry(c *fiber.Ctx) error {
	storeID := storecontext.GetStoreID(c)
	publicID := strings.TrimSpace(c.Params("id"))
	if publicID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "missing_context",
			"message": "event id is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := newWebhookService()
	event, err := svc.Retry(ctx, storeID, publicID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"retried":   true,
		"eventId":   event.PublicID,
		"newStatus": event.Status,
	})
}

// HandleWebhookShow returns one stored event for operator triage.
func HandleWebhookShow(c *fiber.Ctx) error {
	storeID := storecontext.GetStoreID(c)
	publicID := strings.TrimSpace(c.Params("id"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := newWebhookService()
	event, err := svc.GetEvent(ctx, storeID, publicID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"event": event})
}
