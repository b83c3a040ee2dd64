package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stock movement directions.
const (
	StockDirectionIn  = "IN"
	StockDirectionOut = "OUT"
)

// Stock movement origins.
const (
	StockOriginManual            = "manual"
	StockOriginOrderPlacement    = "order_placement"
	StockOriginOrderCancellation = "order_cancellation"
)

// StockMovement is one append-only row of the inventory ledger. Inventory
// levels are derived by summing movements; rows are never updated or deleted.
type StockMovement struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	StoreID     uint      `gorm:"not null;index:idx_stock_movements_store_product,priority:1" json:"store_id"`
	ProductID   uint      `gorm:"not null;index:idx_stock_movements_store_product,priority:2" json:"product_id"`
	VariantID   *uint     `gorm:"default:null;index" json:"variant_id,omitempty"`
	Direction   string    `gorm:"type:varchar(3);not null" json:"direction" validate:"oneof=IN OUT"`
	Origin      string    `gorm:"type:varchar(32);not null;index" json:"origin" validate:"oneof=manual order_placement order_cancellation"`
	Quantity    int       `gorm:"not null" json:"quantity" validate:"gt=0"`
	Reason      string    `gorm:"type:text" json:"reason"`
	SnapshotQty *int      `gorm:"default:null" json:"snapshot_qty,omitempty"`
	CreatedBy   *uint     `gorm:"default:null" json:"created_by,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (m *StockMovement) Validate() error {
	v := validator.New()
	return v.Struct(m)
}

// BeforeCreate assigns the movement id so callers never hand-roll one.
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// SignedQuantity returns the quantity with the ledger sign applied.
func (m *StockMovement) SignedQuantity() int {
	if m.Direction == StockDirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}
