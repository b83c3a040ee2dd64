package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. Cancelled and delivered are terminal as far as the
// cancellation workflow is concerned.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses as reported by the payment provider reconciliation.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusFailed   = "failed"
)

type Order struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	StoreID           uint            `gorm:"not null;index" json:"store_id"`
	Reference         string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference" validate:"required,max=64"`
	Status            string          `gorm:"type:varchar(20);default:'pending';index" json:"status" validate:"oneof=pending processing shipped delivered cancelled"`
	PaymentStatus     string          `gorm:"type:varchar(20);default:'pending';index" json:"payment_status" validate:"oneof=pending paid refunded failed"`
	PaymentProvider   string          `gorm:"type:varchar(40);default:''" json:"payment_provider"`
	ExternalPaymentID string          `gorm:"type:varchar(191);default:'';index" json:"external_payment_id"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	ShippingCost      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shipping_cost"`
	CancelReason      string          `gorm:"type:text" json:"cancel_reason,omitempty"`
	CancelledAt       *time.Time      `gorm:"type:timestamp;default:null" json:"cancelled_at,omitempty"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt         time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

// OrderItem is immutable once the order exists; this core only ever reads it.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	VariantID *uint           `gorm:"default:null" json:"variant_id,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (o *Order) Validate() error {
	v := validator.New()
	return v.Struct(o)
}

// IsCancelled reports whether the order already reached the cancelled state.
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsDelivered reports whether the order was delivered. Delivered orders can
// no longer be cancelled; returns go through a separate flow.
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// IsPaid reports whether the provider confirmed payment for this order.
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}
