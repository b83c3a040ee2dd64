package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/linvex-software/lvx-ecommerce/app/controllers"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/middleware"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/webhook"
)

// WebhookRouter installs the public provider-facing ingestion route. There
// is no session auth here; authenticity comes from the HMAC signature.
type WebhookRouter struct {
}

func (h WebhookRouter) InstallRouter(app *fiber.App) {
	verifier := webhook.NewVerifier(webhook.LoadSecretsFromEnv(webhook.ConfiguredProviders()...))
	controllers.SetupWebhookVerifier(verifier)

	hooks := app.Group("/webhooks", middleware.StoreContextMiddleware())
	hooks.Post("/:provider", controllers.HandleProviderWebhook)
}

func NewWebhookRouter() *WebhookRouter {
	return &WebhookRouter{}
}
