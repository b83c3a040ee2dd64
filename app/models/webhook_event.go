package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Webhook event statuses. A received event either becomes processed or
// failed; a failed event may be retried but never returns to received.
const (
	WebhookStatusReceived  = "received"
	WebhookStatusProcessed = "processed"
	WebhookStatusFailed    = "failed"
)

// WebhookEvent stores every inbound payment-provider webhook delivery, one
// row per delivery, regardless of signature validity or processing outcome.
// It is the audit trail and the anchor for operator-driven retries.
// Provider, payload and store are immutable after creation; rows are never
// deleted by this core.
type WebhookEvent struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	PublicID       string     `gorm:"type:char(36);uniqueIndex;not null" json:"public_id"`
	StoreID        uint       `gorm:"not null;index" json:"store_id"`
	Provider       string     `gorm:"type:varchar(40);not null;index" json:"provider"`
	EventType      *string    `gorm:"type:varchar(100);default:null;index" json:"event_type,omitempty"`
	Payload        string     `gorm:"type:longtext;not null" json:"payload"`
	SignatureValid bool       `gorm:"default:false;index" json:"signature_valid"`
	Status         string     `gorm:"type:varchar(20);default:'received';index" json:"status"`
	Attempts       uint       `gorm:"not null;default:0" json:"attempts"`
	LastAttemptAt  *time.Time `gorm:"type:timestamp;default:null" json:"last_attempt_at,omitempty"`
	ErrorMessage   *string    `gorm:"type:text;default:null" json:"error_message,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the public id used on the HTTP surface.
func (e *WebhookEvent) BeforeCreate(tx *gorm.DB) error {
	if e.PublicID == "" {
		e.PublicID = uuid.NewString()
	}
	return nil
}

// IsTerminal reports whether the event reached processed or failed.
func (e *WebhookEvent) IsTerminal() bool {
	return e.Status == WebhookStatusProcessed || e.Status == WebhookStatusFailed
}
