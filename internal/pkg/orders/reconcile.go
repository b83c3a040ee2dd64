package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/linvex-software/lvx-ecommerce/app/models"
	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"gorm.io/gorm"
)

// ReconcileService applies provider payment state to local orders. It is
// idempotent against the order reference: applying the same provider status
// twice leaves the order in the same terminal state as applying it once.
// This idempotency is what the webhook pipeline leans on in place of
// per-correlation-key locking.
type ReconcileService struct {
	orders repository.OrderRepository
}

// NewReconcileService creates a reconcile service from an injected order
// repository.
func NewReconcileService(orders repository.OrderRepository) *ReconcileService {
	return &ReconcileService{orders: orders}
}

// NewReconcileServiceFromDB creates a reconcile service from a GORM DB handle.
func NewReconcileServiceFromDB(db *gorm.DB) *ReconcileService {
	return NewReconcileService(repository.NewOrderRepository(db))
}

// ReconcileOrderPayment maps a provider payment status onto the referenced
// order. An order the platform does not know is not an error; providers
// reference sales created through other channels.
func (s *ReconcileService) ReconcileOrderPayment(ctx context.Context, storeID uint, externalReference, provider, externalPaymentID, providerStatus string) error {
	_ = ctx
	reference := strings.TrimSpace(externalReference)
	if reference == "" {
		return nil
	}

	order, err := s.orders.GetByReference(storeID, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Infof("[Reconcile] no order for reference %q (store %d), ignoring", reference, storeID)
			return nil
		}
		return err
	}

	paymentStatus := MapProviderPaymentStatus(providerStatus)
	if paymentStatus == "" {
		return nil
	}

	changed := false
	if order.PaymentStatus != paymentStatus {
		order.PaymentStatus = paymentStatus
		changed = true
	}
	if provider != "" && order.PaymentProvider != provider {
		order.PaymentProvider = provider
		changed = true
	}
	if externalPaymentID != "" && order.ExternalPaymentID != externalPaymentID {
		order.ExternalPaymentID = externalPaymentID
		changed = true
	}
	if !changed {
		return nil
	}

	return s.orders.Update(order)
}

// ReconcilePhysicalSale is the point-of-sale counterpart. The POS subsystem
// lives outside this core; the default implementation records the event and
// moves on.
func (s *ReconcileService) ReconcilePhysicalSale(ctx context.Context, storeID uint, externalReference, provider, externalPaymentID, providerStatus string) error {
	_ = ctx
	log.Infof("[Reconcile] physical sale %q (store %d, provider %s) status %q acknowledged",
		externalReference, storeID, provider, providerStatus)
	return nil
}

// MapProviderPaymentStatus normalizes provider payment vocabulary onto the
// order payment status enum. Unknown statuses map to empty (no change).
func MapProviderPaymentStatus(providerStatus string) string {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "approved", "paid", "captured", "authorized":
		return models.PaymentStatusPaid
	case "refunded", "charged_back":
		return models.PaymentStatusRefunded
	case "rejected", "cancelled", "canceled", "failed":
		return models.PaymentStatusFailed
	case "pending", "in_process":
		return models.PaymentStatusPending
	default:
		return ""
	}
}
