package webhook

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/linvex-software/lvx-ecommerce/app/models"
	"github.com/linvex-software/lvx-ecommerce/app/repository"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/apperror"
)

// InvalidSignatureMessage is the error recorded on events whose signature
// did not verify.
const InvalidSignatureMessage = "Invalid signature"

// Handler executes the business effect for one webhook event.
type Handler interface {
	Handle(ctx context.Context, event *models.WebhookEvent) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *models.WebhookEvent) error

func (f HandlerFunc) Handle(ctx context.Context, event *models.WebhookEvent) error {
	return f(ctx, event)
}

// OrderPaymentReconciler applies a provider payment status to a local order,
// idempotently against the external reference.
type OrderPaymentReconciler interface {
	ReconcileOrderPayment(ctx context.Context, storeID uint, externalReference, provider, externalPaymentID, providerStatus string) error
}

// PhysicalSaleReconciler is the point-of-sale counterpart.
type PhysicalSaleReconciler interface {
	ReconcilePhysicalSale(ctx context.Context, storeID uint, externalReference, provider, externalPaymentID, providerStatus string) error
}

type registryKey struct {
	provider  string
	eventType string
}

// Dispatcher routes a stored webhook event to its handler and records the
// terminal status. Routing is an explicit registry built at startup;
// unregistered (provider, event type) pairs run a no-op handler and count
// as processed; providers send plenty of event types nobody cares about.
type Dispatcher struct {
	repo     repository.WebhookEventRepository
	registry map[registryKey]Handler
	noop     Handler
}

// NewDispatcher builds the dispatcher with the built-in payment routes
// registered for the two supported providers.
func NewDispatcher(repo repository.WebhookEventRepository, orders OrderPaymentReconciler, sales PhysicalSaleReconciler) *Dispatcher {
	d := &Dispatcher{
		repo:     repo,
		registry: make(map[registryKey]Handler),
		noop: HandlerFunc(func(ctx context.Context, event *models.WebhookEvent) error {
			return nil
		}),
	}

	payment := &paymentHandler{orders: orders, sales: sales}
	for _, eventType := range []string{"payment.created", "payment.updated"} {
		d.Register("mercadopago", eventType, payment)
	}
	for _, eventType := range []string{"transaction.created", "transaction.updated"} {
		d.Register("pagseguro", eventType, payment)
	}

	return d
}

// Register binds a handler to a (provider, event type) pair.
func (d *Dispatcher) Register(provider, eventType string, handler Handler) {
	key := registryKey{
		provider:  strings.ToLower(strings.TrimSpace(provider)),
		eventType: strings.ToLower(strings.TrimSpace(eventType)),
	}
	d.registry[key] = handler
}

// Dispatch executes the event's handler and records processed or failed on
// the event store. A handler error is returned to the caller (the queue
// logs it); everything else ends in processed.
func (d *Dispatcher) Dispatch(ctx context.Context, event *models.WebhookEvent) error {
	// Normally filtered out before dispatch, but must be safe if invoked.
	if !event.SignatureValid {
		if err := d.repo.MarkFailed(event.ID, InvalidSignatureMessage); err != nil {
			return err
		}
		event.Status = models.WebhookStatusFailed
		return nil
	}

	handler := d.lookup(event)
	if err := handler.Handle(ctx, event); err != nil {
		if markErr := d.repo.MarkFailed(event.ID, err.Error()); markErr != nil {
			log.Errorf("[Webhook] Failed to mark event %s failed: %v", event.PublicID, markErr)
		}
		event.Status = models.WebhookStatusFailed
		return apperror.Wrap(apperror.KindHandlerFailure, "webhook handler failed", err)
	}

	if err := d.repo.MarkProcessed(event.ID); err != nil {
		return err
	}
	event.Status = models.WebhookStatusProcessed
	return nil
}

func (d *Dispatcher) lookup(event *models.WebhookEvent) Handler {
	eventType := ""
	if event.EventType != nil {
		eventType = *event.EventType
	}
	key := registryKey{
		provider:  strings.ToLower(strings.TrimSpace(event.Provider)),
		eventType: strings.ToLower(strings.TrimSpace(eventType)),
	}
	if handler, ok := d.registry[key]; ok {
		return handler
	}
	return d.noop
}

// paymentHandler reconciles payment events against local orders or physical
// sales, depending on how the charge was tagged. Payloads missing the
// correlation fields are ignored: a partial payload from a provider must
// not crash the pipeline.
type paymentHandler struct {
	orders OrderPaymentReconciler
	sales  PhysicalSaleReconciler
}

func (h *paymentHandler) Handle(ctx context.Context, event *models.WebhookEvent) error {
	payment, err := ParsePaymentEvent([]byte(event.Payload))
	if err != nil {
		log.Infof("[Webhook] Unparseable payment payload on event %s, ignoring", event.PublicID)
		return nil
	}

	externalReference := payment.ExternalReference()
	if strings.TrimSpace(payment.Data.Metadata.StoreID) == "" || externalReference == "" {
		log.Infof("[Webhook] Event %s missing correlation fields, ignoring", event.PublicID)
		return nil
	}

	if payment.IsPhysicalSale() {
		return h.sales.ReconcilePhysicalSale(ctx, event.StoreID, externalReference, event.Provider, payment.PaymentID(), payment.Data.Status)
	}
	return h.orders.ReconcileOrderPayment(ctx, event.StoreID, externalReference, event.Provider, payment.PaymentID(), payment.Data.Status)
}
