package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/cache"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/database"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/env"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/orders"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/router"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/taskqueue"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/webhook"
)

func main() {
	app := NewApplication()

	manager := taskqueue.GetManager()
	manager.Start()
	defer manager.Stop()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	registerQueueProcessors()

	app := fiber.New(fiber.Config{
		AppName: "lvx-ecommerce",
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}

// registerQueueProcessors binds the webhook dispatch processor to the task
// queue before any job is enqueued.
func registerQueueProcessors() {
	repo := repository.GetGlobalFactory().GetWebhookEventRepository()
	reconciler := orders.NewReconcileServiceFromDB(database.GetDB())
	dispatcher := webhook.NewDispatcher(repo, reconciler, reconciler)
	svc := webhook.NewService(repo, dispatcher)

	queue := taskqueue.GetManager().GetQueue()
	queue.Register(taskqueue.JobTypeWebhookDispatch, webhook.NewDispatchProcessor(svc))
}
