package webhook

import (
	"context"
	"fmt"

	"github.com/linvex-software/lvx-ecommerce/internal/pkg/taskqueue"
)

// DispatchProcessor adapts the webhook service to the task queue. The
// ingestion controller enqueues one dispatch job per accepted event; the
// queue guarantees each job is picked up exactly once per attempt.
type DispatchProcessor struct {
	svc *Service
}

// NewDispatchProcessor creates the queue processor for webhook dispatch jobs.
func NewDispatchProcessor(svc *Service) *DispatchProcessor {
	return &DispatchProcessor{svc: svc}
}

func (p *DispatchProcessor) Process(ctx context.Context, job *taskqueue.Job) error {
	payload, err := taskqueue.WebhookDispatchPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid webhook dispatch payload: %w", err)
	}

	event, err := p.svc.repo.GetByID(payload.EventID)
	if err != nil {
		return fmt.Errorf("load webhook event %d: %w", payload.EventID, err)
	}

	return p.svc.Dispatch(ctx, event)
}
