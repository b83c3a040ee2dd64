package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linvex-software/lvx-ecommerce/app/models"
)

func TestMapProviderPaymentStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"approved", models.PaymentStatusPaid},
		{"paid", models.PaymentStatusPaid},
		{"captured", models.PaymentStatusPaid},
		{"authorized", models.PaymentStatusPaid},
		{"APPROVED", models.PaymentStatusPaid},
		{"refunded", models.PaymentStatusRefunded},
		{"charged_back", models.PaymentStatusRefunded},
		{"rejected", models.PaymentStatusFailed},
		{"cancelled", models.PaymentStatusFailed},
		{"canceled", models.PaymentStatusFailed},
		{"failed", models.PaymentStatusFailed},
		{"pending", models.PaymentStatusPending},
		{"in_process", models.PaymentStatusPending},
		{"something_new", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapProviderPaymentStatus(tt.provider), "provider status %q", tt.provider)
	}
}

func TestReconcileOrderPayment(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileServiceFromDB(db)

	order := &models.Order{
		StoreID:       1,
		Reference:     "ORD-2026-000777",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Total:         decimal.NewFromFloat(80),
		ShippingCost:  decimal.Zero,
	}
	require.NoError(t, db.Create(order).Error)

	err := svc.ReconcileOrderPayment(context.Background(), 1, "ORD-2026-000777", "mercadopago", "pay-555", "approved")
	require.NoError(t, err)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, "mercadopago", stored.PaymentProvider)
	assert.Equal(t, "pay-555", stored.ExternalPaymentID)
	// Reconciliation never touches the fulfilment status.
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestReconcileOrderPaymentIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileServiceFromDB(db)

	order := &models.Order{
		StoreID:       1,
		Reference:     "ORD-IDEM",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Total:         decimal.NewFromFloat(10),
		ShippingCost:  decimal.Zero,
	}
	require.NoError(t, db.Create(order).Error)

	// Providers re-deliver; applying the same status twice must land on
	// the same terminal state as applying it once.
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.ReconcileOrderPayment(context.Background(), 1, "ORD-IDEM", "pagseguro", "tx-1", "paid"))
	}

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
}

func TestReconcileOrderPaymentIgnoresUnknownReference(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileServiceFromDB(db)

	assert.NoError(t, svc.ReconcileOrderPayment(context.Background(), 1, "NO-SUCH-ORDER", "mercadopago", "pay-1", "approved"))
	assert.NoError(t, svc.ReconcileOrderPayment(context.Background(), 1, "", "mercadopago", "pay-1", "approved"))
}

func TestReconcileOrderPaymentIgnoresUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileServiceFromDB(db)

	order := &models.Order{
		StoreID:       1,
		Reference:     "ORD-UNK",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPaid,
		Total:         decimal.NewFromFloat(10),
		ShippingCost:  decimal.Zero,
	}
	require.NoError(t, db.Create(order).Error)

	require.NoError(t, svc.ReconcileOrderPayment(context.Background(), 1, "ORD-UNK", "mercadopago", "pay-1", "brand_new_status"))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
}

func TestReconcileOrderPaymentScopedToStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileServiceFromDB(db)

	order := &models.Order{
		StoreID:       1,
		Reference:     "ORD-SCOPE",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Total:         decimal.NewFromFloat(10),
		ShippingCost:  decimal.Zero,
	}
	require.NoError(t, db.Create(order).Error)

	// The same reference under another tenant is a different namespace.
	require.NoError(t, svc.ReconcileOrderPayment(context.Background(), 2, "ORD-SCOPE", "mercadopago", "pay-1", "approved"))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
}

func TestReconcilePhysicalSale(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileServiceFromDB(db)

	assert.NoError(t, svc.ReconcilePhysicalSale(context.Background(), 1, "POS-1", "mercadopago", "pay-1", "approved"))
}
