package repository

import (
	"time"

	"github.com/linvex-software/lvx-ecommerce/app/models"
	"gorm.io/gorm"
)

// gormWebhookEventRepository implements WebhookEventRepository using GORM
type gormWebhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &gormWebhookEventRepository{db: db}
}

func (r *gormWebhookEventRepository) Create(event *models.WebhookEvent) error {
	return r.db.Create(event).Error
}

func (r *gormWebhookEventRepository) GetByID(id uint) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *gormWebhookEventRepository) GetByPublicID(storeID uint, publicID string) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	err := r.db.Where("store_id = ? AND public_id = ?", storeID, publicID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *gormWebhookEventRepository) MarkProcessed(id uint) error {
	now := time.Now()
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":          models.WebhookStatusProcessed,
		"last_attempt_at": &now,
		"error_message":   nil,
	}).Error
}

func (r *gormWebhookEventRepository) MarkFailed(id uint, errorMessage string) error {
	now := time.Now()
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":          models.WebhookStatusFailed,
		"last_attempt_at": &now,
		"error_message":   errorMessage,
	}).Error
}

// IncrementAttempts bumps the attempt counter and the last-attempt timestamp
// in one statement so the counter stays monotonic under concurrent retries.
func (r *gormWebhookEventRepository) IncrementAttempts(id uint) error {
	now := time.Now()
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts":        gorm.Expr("attempts + 1"),
		"last_attempt_at": &now,
	}).Error
}

func (r *gormWebhookEventRepository) ListByStore(storeID uint, offset, limit int) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *gormWebhookEventRepository) CountByStatus(storeID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.WebhookEvent{}).
		Where("store_id = ? AND status = ?", storeID, status).
		Count(&count).Error
	return count, err
}
