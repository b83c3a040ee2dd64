package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockMovementSignedQuantity(t *testing.T) {
	in := &StockMovement{Direction: StockDirectionIn, Quantity: 5}
	out := &StockMovement{Direction: StockDirectionOut, Quantity: 3}

	assert.Equal(t, 5, in.SignedQuantity())
	assert.Equal(t, -3, out.SignedQuantity())
}

func TestStockMovementValidate(t *testing.T) {
	valid := &StockMovement{
		StoreID:   1,
		ProductID: 1,
		Direction: StockDirectionIn,
		Origin:    StockOriginOrderCancellation,
		Quantity:  2,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(m *StockMovement)
	}{
		{"zero quantity", func(m *StockMovement) { m.Quantity = 0 }},
		{"negative quantity", func(m *StockMovement) { m.Quantity = -1 }},
		{"bad direction", func(m *StockMovement) { m.Direction = "SIDEWAYS" }},
		{"bad origin", func(m *StockMovement) { m.Origin = "guesswork" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := *valid
			tt.mutate(&m)
			assert.Error(t, m.Validate())
		})
	}
}

func TestWebhookEventIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{WebhookStatusReceived, false},
		{WebhookStatusProcessed, true},
		{WebhookStatusFailed, true},
	}

	for _, tt := range tests {
		e := &WebhookEvent{Status: tt.status}
		assert.Equal(t, tt.want, e.IsTerminal(), "status %s", tt.status)
	}
}
