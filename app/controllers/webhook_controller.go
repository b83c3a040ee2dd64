package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/database"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/orders"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/storecontext"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/taskqueue"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/webhook"
)

// webhookVerifier is constructed once at startup with the explicit secrets
// map; controllers never read secret material from the environment.
var webhookVerifier *webhook.Verifier

// SetupWebhookVerifier installs the verifier the ingestion route uses.
func SetupWebhookVerifier(verifier *webhook.Verifier) {
	webhookVerifier = verifier
}

func newWebhookService() *webhook.Service {
	repo := repository.GetGlobalFactory().GetWebhookEventRepository()
	reconciler := orders.NewReconcileServiceFromDB(database.GetDB())
	dispatcher := webhook.NewDispatcher(repo, reconciler, reconciler)
	return webhook.NewService(repo, dispatcher)
}

// HandleProviderWebhook ingests one payment-provider delivery. Every
// delivery gets exactly one stored event row; the provider gets a 200 as
// soon as that row exists, valid signature or not, so flaky providers do
// not re-deliver what we already durably recorded.
func HandleProviderWebhook(c *fiber.Ctx) error {
	provider := strings.ToLower(strings.TrimSpace(c.Params("provider")))
	storeID := storecontext.GetStoreID(c)
	if provider == "" || storeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "missing_context",
			"message": "provider and store context are required",
		})
	}

	rawBody := append([]byte(nil), c.BodyRaw()...)
	if len(rawBody) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "missing_body",
			"message": "request body is required",
		})
	}

	if webhookVerifier == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "webhook verifier not configured",
		})
	}

	signature := firstHeaderValue(c, webhook.SignatureHeaders...)
	result, err := webhookVerifier.Verify(provider, storeID, rawBody, signature)
	if err != nil {
		// Missing secret is a configuration problem, not an invalid caller.
		log.Errorf("[Webhook] Verification for provider %s unavailable: %v", provider, err)
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	svc := newWebhookService()
	event, err := svc.RecordEvent(ctx, webhook.EventInput{
		StoreID:        storeID,
		Provider:       provider,
		EventType:      webhook.ExtractEventType(provider, rawBody),
		Payload:        string(rawBody),
		SignatureValid: result.Valid,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}

	if !result.Valid {
		if markErr := svc.MarkInvalidSignature(ctx, event.ID); markErr != nil {
			log.Errorf("[Webhook] Failed to mark event %s invalid: %v", event.PublicID, markErr)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "eventId": event.PublicID})
	}

	payload := taskqueue.WebhookDispatchPayload{EventID: event.ID}
	if _, err := taskqueue.GetManager().GetQueue().Enqueue(taskqueue.JobTypeWebhookDispatch, payload.ToMap()); err != nil {
		// The event stays in received; the retry endpoint recovers it.
		log.Errorf("[Webhook] Failed to enqueue dispatch for event %s: %v", event.PublicID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "eventId": event.PublicID})
}

func firstHeaderValue(c *fiber.Ctx, keys ...string) string {
	for _, k := range keys {
		v := strings.TrimSpace(c.Get(k))
		if v != "" {
			return v
		}
	}
	return ""
}
