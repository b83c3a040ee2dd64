package repository

import (
	"github.com/linvex-software/lvx-ecommerce/app/models"
	"gorm.io/gorm"
)

// gormStockMovementRepository implements StockMovementRepository using GORM
type gormStockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository
func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &gormStockMovementRepository{db: db}
}

func (r *gormStockMovementRepository) Create(movement *models.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}
	return r.db.Create(movement).Error
}

func (r *gormStockMovementRepository) ListByProduct(storeID, productID uint, offset, limit int) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	err := r.db.Where("store_id = ? AND product_id = ?", storeID, productID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&movements).Error
	return movements, err
}

func (r *gormStockMovementRepository) ListByOrigin(storeID uint, origin string, offset, limit int) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	err := r.db.Where("store_id = ? AND origin = ?", storeID, origin).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&movements).Error
	return movements, err
}

// CurrentLevel derives the inventory level by summing the ledger. There is
// no stored counter to drift out of sync.
func (r *gormStockMovementRepository) CurrentLevel(storeID, productID uint, variantID *uint) (int, error) {
	query := r.db.Model(&models.StockMovement{}).
		Select("COALESCE(SUM(CASE WHEN direction = ? THEN quantity ELSE -quantity END), 0)", models.StockDirectionIn).
		Where("store_id = ? AND product_id = ?", storeID, productID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var level int
	err := query.Scan(&level).Error
	return level, err
}
