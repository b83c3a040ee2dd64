package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/linvex-software/lvx-ecommerce/app/models"
	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/apperror"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Store{},
		&models.Order{},
		&models.OrderItem{},
		&models.StockMovement{},
	))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, status, paymentStatus string, items []models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		StoreID:       1,
		Reference:     "ORD-" + status + "-" + paymentStatus,
		Status:        status,
		PaymentStatus: paymentStatus,
		Total:         decimal.NewFromFloat(149.90),
		ShippingCost:  decimal.NewFromFloat(9.90),
		Items:         items,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func variantID(id uint) *uint {
	return &id
}

func TestCancellationService_Cancel(t *testing.T) {
	db := newTestDB(t)
	svc := NewCancellationServiceFromDB(db)
	stockRepo := repository.NewStockMovementRepository(db)

	order := seedOrder(t, db, models.OrderStatusProcessing, models.PaymentStatusPending, []models.OrderItem{
		{ProductID: 10, Quantity: 2, UnitPrice: decimal.NewFromFloat(50)},
		{ProductID: 11, VariantID: variantID(3), Quantity: 1, UnitPrice: decimal.NewFromFloat(40)},
	})

	actor := uint(42)
	cancelled, err := svc.Cancel(context.Background(), 1, order.ID, &actor, "customer request")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentStatusPending, cancelled.PaymentStatus)
	assert.Equal(t, "customer request", cancelled.CancelReason)
	require.NotNil(t, cancelled.CancelledAt)

	// One IN movement per order line, quantity equal to the line quantity.
	movements, err := stockRepo.ListByOrigin(1, models.StockOriginOrderCancellation, 0, 10)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	for _, m := range movements {
		assert.Equal(t, models.StockDirectionIn, m.Direction)
		assert.Contains(t, m.Reason, "Cancellation of order #")
		assert.Contains(t, m.Reason, "customer request")
		require.NotNil(t, m.CreatedBy)
		assert.Equal(t, actor, *m.CreatedBy)
	}

	level, err := stockRepo.CurrentLevel(1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, level)

	level, err = stockRepo.CurrentLevel(1, 11, variantID(3))
	require.NoError(t, err)
	assert.Equal(t, 1, level)
}

func TestCancellationService_PaidOrderBecomesRefunded(t *testing.T) {
	db := newTestDB(t)
	svc := NewCancellationServiceFromDB(db)

	order := seedOrder(t, db, models.OrderStatusProcessing, models.PaymentStatusPaid, []models.OrderItem{
		{ProductID: 20, Quantity: 1, UnitPrice: decimal.NewFromFloat(10)},
	})

	cancelled, err := svc.Cancel(context.Background(), 1, order.ID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, cancelled.PaymentStatus)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)
	assert.Equal(t, models.PaymentStatusRefunded, stored.PaymentStatus)
}

func TestCancellationService_FailedPaymentStaysFailed(t *testing.T) {
	db := newTestDB(t)
	svc := NewCancellationServiceFromDB(db)

	order := seedOrder(t, db, models.OrderStatusPending, models.PaymentStatusFailed, []models.OrderItem{
		{ProductID: 21, Quantity: 1, UnitPrice: decimal.NewFromFloat(10)},
	})

	cancelled, err := svc.Cancel(context.Background(), 1, order.ID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, cancelled.PaymentStatus)
}

func TestCancellationService_RejectsTerminalOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewCancellationServiceFromDB(db)
	stockRepo := repository.NewStockMovementRepository(db)

	tests := []struct {
		name    string
		status  string
		message string
	}{
		{"already cancelled", models.OrderStatusCancelled, "order is already cancelled"},
		{"delivered", models.OrderStatusDelivered, "cannot cancel a delivered order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := seedOrder(t, db, tt.status, models.PaymentStatusPaid, []models.OrderItem{
				{ProductID: 30, Quantity: 5, UnitPrice: decimal.NewFromFloat(10)},
			})

			_, err := svc.Cancel(context.Background(), 1, order.ID, nil, "too late")
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindInvalidOperation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	// Rejected cancellations write nothing to the ledger.
	movements, err := stockRepo.ListByOrigin(1, models.StockOriginOrderCancellation, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestCancellationService_UnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewCancellationServiceFromDB(db)

	_, err := svc.Cancel(context.Background(), 1, 9999, nil, "")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCancellationService_ScopedToStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewCancellationServiceFromDB(db)

	order := seedOrder(t, db, models.OrderStatusPending, models.PaymentStatusPending, []models.OrderItem{
		{ProductID: 40, Quantity: 1, UnitPrice: decimal.NewFromFloat(10)},
	})

	// Another tenant cannot cancel the order.
	_, err := svc.Cancel(context.Background(), 2, order.ID, nil, "")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestCancelWithStockReversal_RollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockMovementRepository(db)

	order := seedOrder(t, db, models.OrderStatusProcessing, models.PaymentStatusPaid, []models.OrderItem{
		{ProductID: 50, Quantity: 3, UnitPrice: decimal.NewFromFloat(10)},
	})

	order.Status = models.OrderStatusCancelled
	order.PaymentStatus = models.PaymentStatusRefunded

	// Duplicate primary keys make the second insert fail, which must roll
	// back the first movement and the order update.
	movements := []models.StockMovement{
		{ID: "dup", StoreID: 1, ProductID: 50, Direction: models.StockDirectionIn, Origin: models.StockOriginOrderCancellation, Quantity: 3},
		{ID: "dup", StoreID: 1, ProductID: 50, Direction: models.StockDirectionIn, Origin: models.StockOriginOrderCancellation, Quantity: 3},
	}

	err := orderRepo.CancelWithStockReversal(order, movements)
	require.Error(t, err)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusProcessing, stored.Status)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	level, levelErr := stockRepo.CurrentLevel(1, 50, nil)
	require.NoError(t, levelErr)
	assert.Equal(t, 0, level)
}

func TestBuildReversalMovements(t *testing.T) {
	order := &models.Order{
		ID:      125,
		StoreID: 1,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 4},
			{ProductID: 2, VariantID: variantID(9), Quantity: 1},
		},
	}

	movements := buildReversalMovements(order, nil, "")
	require.Len(t, movements, 2)

	assert.Equal(t, uint(1), movements[0].ProductID)
	assert.Equal(t, 4, movements[0].Quantity)
	assert.Nil(t, movements[0].VariantID)
	assert.Equal(t, uint(2), movements[1].ProductID)
	require.NotNil(t, movements[1].VariantID)
	assert.Equal(t, uint(9), *movements[1].VariantID)

	for _, m := range movements {
		assert.Equal(t, models.StockDirectionIn, m.Direction)
		assert.Equal(t, models.StockOriginOrderCancellation, m.Origin)
		assert.Equal(t, uint(1), m.StoreID)
		assert.Nil(t, m.CreatedBy)
	}
}
