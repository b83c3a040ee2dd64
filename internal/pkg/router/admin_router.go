package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/linvex-software/lvx-ecommerce/app/controllers"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/middleware"
)

// AdminRouter installs the operator-facing triage routes.
type AdminRouter struct {
}

func (h AdminRouter) InstallRouter(app *fiber.App) {
	admin := app.Group("/admin",
		middleware.StoreContextMiddleware(),
		middleware.APIKeyAuthMiddleware(),
		middleware.RequireOperator,
	)
	admin.Get("/webhooks/:id", controllers.HandleWebhookShow)
	admin.Post("/webhooks/:id/retry", controllers.HandleWebhookRetry)
}

func NewAdminRouter() *AdminRouter {
	return &AdminRouter{}
}
