package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/linvex-software/lvx-ecommerce/app/controllers"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1",
		middleware.StoreContextMiddleware(),
		middleware.APIKeyAuthMiddleware(),
		middleware.RequireAuth,
	)
	v1.Post("/orders/:id/cancel", controllers.HandleOrderCancel)
	v1.Get("/products/:id/stock", controllers.HandleProductStock)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
