package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Provider-specific payload field carrying the event type. Providers not
// listed here fall back to the generic "type"/"event" keys.
var eventTypeFields = map[string]string{
	"mercadopago": "action",
	"pagseguro":   "event",
}

// ExtractEventType pulls a best-effort event type out of a raw payload.
// Returns nil when no usable field is present; an unknown event type is not
// an error anywhere in the pipeline.
func ExtractEventType(provider string, raw []byte) *string {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	keys := []string{"type", "event"}
	if field, ok := eventTypeFields[strings.ToLower(strings.TrimSpace(provider))]; ok {
		keys = append([]string{field}, keys...)
	}

	for _, key := range keys {
		if value, ok := doc[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return &trimmed
			}
		}
	}
	return nil
}

// PaymentMetadata is the correlation block providers echo back from the
// original charge request.
type PaymentMetadata struct {
	StoreID           string `json:"store_id"`
	SaleType          string `json:"sale_type"`
	ExternalReference string `json:"external_reference"`
}

// PaymentEvent is the provider-agnostic shape of a payment webhook payload.
type PaymentEvent struct {
	Data struct {
		ID                interface{}     `json:"id"`
		Status            string          `json:"status"`
		ExternalReference string          `json:"external_reference"`
		Metadata          PaymentMetadata `json:"metadata"`
	} `json:"data"`
}

// ParsePaymentEvent decodes a payment payload. Providers send heterogeneous
// documents; callers treat a parse failure as a payload to ignore, not an
// error.
func ParsePaymentEvent(raw []byte) (*PaymentEvent, error) {
	var event PaymentEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// PaymentID renders the provider payment id as a string whether the
// provider sent it as a string or a number.
func (e *PaymentEvent) PaymentID() string {
	switch id := e.Data.ID.(type) {
	case string:
		return id
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%.0f", id), ".")
	case json.Number:
		return id.String()
	default:
		return ""
	}
}

// ExternalReference returns the correlation token, preferring the top-level
// data field over the metadata copy.
func (e *PaymentEvent) ExternalReference() string {
	if ref := strings.TrimSpace(e.Data.ExternalReference); ref != "" {
		return ref
	}
	return strings.TrimSpace(e.Data.Metadata.ExternalReference)
}

// IsPhysicalSale reports whether the payment was tagged as a point-of-sale
// transaction.
func (e *PaymentEvent) IsPhysicalSale() bool {
	switch strings.ToLower(strings.TrimSpace(e.Data.Metadata.SaleType)) {
	case "physical", "pos":
		return true
	default:
		return false
	}
}
