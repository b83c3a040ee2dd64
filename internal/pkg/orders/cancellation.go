package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linvex-software/lvx-ecommerce/app/models"
	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/apperror"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/shortener"
	"gorm.io/gorm"
)

// CancellationService cancels orders and reverses their stock. Cancellation
// is a single irreversible transition guarded by two preconditions; the
// stock reversal and the status flip land in one transaction.
type CancellationService struct {
	orders repository.OrderRepository
}

// NewCancellationService creates a cancellation service from an injected
// order repository.
func NewCancellationService(orders repository.OrderRepository) *CancellationService {
	return &CancellationService{orders: orders}
}

// NewCancellationServiceFromDB creates a cancellation service from a GORM DB handle.
func NewCancellationServiceFromDB(db *gorm.DB) *CancellationService {
	return NewCancellationService(repository.NewOrderRepository(db))
}

// Cancel cancels the order scoped to the store, writing one IN stock
// movement per order line and flipping the order to cancelled. A paid order
// additionally moves to refunded; any other payment status is left alone.
func (s *CancellationService) Cancel(ctx context.Context, storeID, orderID uint, actorID *uint, reason string) (*models.Order, error) {
	_ = ctx
	order, err := s.orders.GetByID(storeID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Newf(apperror.KindNotFound, "order %d not found", orderID)
		}
		return nil, err
	}

	if order.IsCancelled() {
		return nil, apperror.New(apperror.KindInvalidOperation, "order is already cancelled")
	}
	if order.IsDelivered() {
		return nil, apperror.New(apperror.KindInvalidOperation, "cannot cancel a delivered order")
	}

	movements := buildReversalMovements(order, actorID, reason)

	now := time.Now()
	order.Status = models.OrderStatusCancelled
	if order.PaymentStatus == models.PaymentStatusPaid {
		order.PaymentStatus = models.PaymentStatusRefunded
	}
	order.CancelReason = strings.TrimSpace(reason)
	order.CancelledAt = &now

	if err := s.orders.CancelWithStockReversal(order, movements); err != nil {
		return nil, err
	}

	return order, nil
}

// buildReversalMovements produces one IN movement per order line, quantity
// equal to the line quantity. Partial reversal is never acceptable; the
// repository writes the whole slice transactionally.
func buildReversalMovements(order *models.Order, actorID *uint, reason string) []models.StockMovement {
	shortRef := shortener.EncodeID(order.ID)
	movementReason := fmt.Sprintf("Cancellation of order #%s", shortRef)
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		movementReason += ": " + trimmed
	}

	movements := make([]models.StockMovement, 0, len(order.Items))
	for _, item := range order.Items {
		movements = append(movements, models.StockMovement{
			StoreID:   order.StoreID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Direction: models.StockDirectionIn,
			Origin:    models.StockOriginOrderCancellation,
			Quantity:  item.Quantity,
			Reason:    movementReason,
			CreatedBy: actorID,
		})
	}
	return movements
}
