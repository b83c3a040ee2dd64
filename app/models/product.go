package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the minimal catalogue row this core needs: order items and
// stock movements reference it, nothing more. The full catalogue (images,
// descriptions, SEO) lives outside this core.
type Product struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	StoreID   uint             `gorm:"not null;index" json:"store_id"`
	Name      string           `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	SKU       string           `gorm:"type:varchar(100);index" json:"sku" validate:"max=100"`
	Price     decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive  bool             `gorm:"default:true" json:"is_active"`
	Variants  []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant is a sellable variation of a product (size, colour).
type ProductVariant struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	SKU       string          `gorm:"type:varchar(100);index" json:"sku" validate:"max=100"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Product) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

func FindProductByID(db *gorm.DB, storeID, id uint) (*Product, error) {
	var product Product
	err := db.Where("store_id = ?", storeID).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
