package repository

import (
	"github.com/linvex-software/lvx-ecommerce/app/models"
	"gorm.io/gorm"
)

// gormProductRepository implements ProductRepository using GORM
type gormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *gormProductRepository) GetByID(storeID, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Variants").Where("store_id = ?", storeID).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) List(storeID uint, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&products).Error
	return products, err
}
