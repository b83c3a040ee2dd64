package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Store is a tenant. Every order, product, stock movement and webhook event
// belongs to exactly one store.
type Store struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Slug      string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug" validate:"required,min=1,max=150"`
	Currency  string         `gorm:"type:varchar(3);default:'BRL'" json:"currency" validate:"len=3"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Store) Validate() error {
	v := validator.New()
	return v.Struct(s)
}

func FindStoreByID(db *gorm.DB, id uint) (*Store, error) {
	var store Store
	err := db.First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func FindStoreBySlug(db *gorm.DB, slug string) (*Store, error) {
	var store Store
	err := db.Where("slug = ? AND is_active = ?", slug, true).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}
