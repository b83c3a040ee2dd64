package repository

import (
	"github.com/linvex-software/lvx-ecommerce/app/models"
	"gorm.io/gorm"
)

// gormStoreRepository implements StoreRepository using GORM
type gormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &gormStoreRepository{db: db}
}

func (r *gormStoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

func (r *gormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	err := r.db.First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) GetBySlug(slug string) (*models.Store, error) {
	var store models.Store
	err := r.db.Where("slug = ?", slug).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}
