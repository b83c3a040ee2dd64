package webhook

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/linvex-software/lvx-ecommerce/app/models"
	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service owns webhook event persistence and the operator retry path. The
// dispatcher hangs off it so retries and queued dispatches share one code
// path.
type Service struct {
	repo       repository.WebhookEventRepository
	dispatcher *Dispatcher
}

// NewService creates a webhook service from an injected repository and
// dispatcher.
func NewService(repo repository.WebhookEventRepository, dispatcher *Dispatcher) *Service {
	return &Service{repo: repo, dispatcher: dispatcher}
}

// RecordEvent persists one webhook event row per inbound delivery, status
// received, attempts 0. This happens for every delivery, valid signature or
// not: the row is the audit and idempotency anchor.
func (s *Service) RecordEvent(ctx context.Context, in EventInput) (*models.WebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return nil, errors.New("provider is required")
	}
	if in.StoreID == 0 {
		return nil, errors.New("store_id is required")
	}

	event := &models.WebhookEvent{
		StoreID:        in.StoreID,
		Provider:       provider,
		EventType:      in.EventType,
		Payload:        in.Payload,
		SignatureValid: in.SignatureValid,
		Status:         models.WebhookStatusReceived,
	}
	if err := s.repo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// MarkInvalidSignature records the terminal failed status for an event that
// did not verify. The provider still gets a 200; the row is the record.
func (s *Service) MarkInvalidSignature(ctx context.Context, eventID uint) error {
	_ = ctx
	return s.repo.MarkFailed(eventID, InvalidSignatureMessage)
}

// Dispatch runs the event through the dispatcher.
func (s *Service) Dispatch(ctx context.Context, event *models.WebhookEvent) error {
	return s.dispatcher.Dispatch(ctx, event)
}

// GetEvent loads an event by public id, scoped to the store.
func (s *Service) GetEvent(ctx context.Context, storeID uint, publicID string) (*models.WebhookEvent, error) {
	_ = ctx
	event, err := s.repo.GetByPublicID(storeID, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Newf(apperror.KindNotFound, "webhook event %s not found", publicID)
		}
		return nil, err
	}
	return event, nil
}

// Retry re-attempts processing of a stored event on operator demand. The
// attempt counter increments before the dispatch so even a failing retry is
// observable. The resulting terminal status lands on the returned event; a
// handler failure is not an error for the caller.
func (s *Service) Retry(ctx context.Context, storeID uint, publicID string) (*models.WebhookEvent, error) {
	event, err := s.GetEvent(ctx, storeID, publicID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementAttempts(event.ID); err != nil {
		return nil, err
	}

	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		log.Errorf("[Webhook] Retry of event %s failed: %v", event.PublicID, err)
	}

	return s.repo.GetByID(event.ID)
}
