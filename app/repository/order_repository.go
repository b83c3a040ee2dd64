package repository

import (
	"github.com/linvex-software/lvx-ecommerce/app/models"
	"gorm.io/gorm"
)

// gormOrderRepository implements OrderRepository using GORM
type gormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *gormOrderRepository) GetByID(storeID, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("store_id = ?", storeID).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByReference(storeID uint, reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("store_id = ? AND reference = ?", storeID, reference).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *gormOrderRepository) List(storeID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

// CancelWithStockReversal records every reversal movement and the order's
// cancelled state inside one transaction. Inventory and order status must
// never observably diverge, so a failure on any row rolls back all of them.
func (r *gormOrderRepository) CancelWithStockReversal(order *models.Order, movements []models.StockMovement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range movements {
			if err := tx.Create(&movements[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Order{}).
			Where("id = ? AND store_id = ?", order.ID, order.StoreID).
			Updates(map[string]interface{}{
				"status":         order.Status,
				"payment_status": order.PaymentStatus,
				"cancel_reason":  order.CancelReason,
				"cancelled_at":   order.CancelledAt,
			}).Error
	})
}
