package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/database"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/orders"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/shortener"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/storecontext"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/usercontext"
)

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// HandleOrderCancel cancels an order and reverses its stock in one
// transaction. Delivered and already-cancelled orders are rejected before
// anything is written.
func HandleOrderCancel(c *fiber.Ctx) error {
	storeID := storecontext.GetStoreID(c)
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_operation",
			"message": "order id must be a positive integer",
		})
	}

	var req cancelOrderRequest
	// The body is optional; a missing or empty body means no reason given.
	_ = c.BodyParser(&req)

	var actorID *uint
	if userCtx := usercontext.GetUserContext(c); userCtx.IsLoggedIn {
		actorID = &userCtx.UserID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	svc := orders.NewCancellationServiceFromDB(database.GetDB())
	order, err := svc.Cancel(ctx, storeID, uint(orderID), actorID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"order":   order,
		"message": "Order #" + shortener.EncodeID(order.ID) + " cancelled",
	})
}

// HandleProductStock reports the current inventory level derived from the
// stock ledger.
func HandleProductStock(c *fiber.Ctx) error {
	storeID := storecontext.GetStoreID(c)
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_operation",
			"message": "product id must be a positive integer",
		})
	}

	repo := repository.GetGlobalFactory().GetStockMovementRepository()
	level, err := repo.CurrentLevel(storeID, uint(productID), nil)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"productId": productID,
		"level":     level,
	})
}
