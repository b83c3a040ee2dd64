package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEventType(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		raw      string
		want     *string
	}{
		{
			name:     "mercadopago action field",
			provider: "mercadopago",
			raw:      `{"action":"payment.updated","type":"payment"}`,
			want:     strPtr("payment.updated"),
		},
		{
			name:     "pagseguro event field",
			provider: "pagseguro",
			raw:      `{"event":"transaction.created"}`,
			want:     strPtr("transaction.created"),
		},
		{
			name:     "unknown provider generic type field",
			provider: "stripe",
			raw:      `{"type":"charge.succeeded"}`,
			want:     strPtr("charge.succeeded"),
		},
		{
			name:     "unknown provider generic event field",
			provider: "stripe",
			raw:      `{"event":"charge.refunded"}`,
			want:     strPtr("charge.refunded"),
		},
		{
			name:     "no usable field",
			provider: "mercadopago",
			raw:      `{"data":{"id":1}}`,
			want:     nil,
		},
		{
			name:     "blank value",
			provider: "pagseguro",
			raw:      `{"event":"   "}`,
			want:     nil,
		},
		{
			name:     "not json",
			provider: "mercadopago",
			raw:      `this is not json`,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEventType(tt.provider, []byte(tt.raw))
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParsePaymentEvent(t *testing.T) {
	raw := `{
		"action": "payment.updated",
		"data": {
			"id": 4242,
			"status": "approved",
			"external_reference": "ORD-2026-000123",
			"metadata": {"store_id": "1", "sale_type": "online"}
		}
	}`

	event, err := ParsePaymentEvent([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "4242", event.PaymentID())
	assert.Equal(t, "approved", event.Data.Status)
	assert.Equal(t, "ORD-2026-000123", event.ExternalReference())
	assert.False(t, event.IsPhysicalSale())

	_, err = ParsePaymentEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestPaymentEvent_PaymentID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"numeric id", `{"data":{"id":987654321}}`, "987654321"},
		{"string id", `{"data":{"id":"PAY-abc-123"}}`, "PAY-abc-123"},
		{"missing id", `{"data":{}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParsePaymentEvent([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, event.PaymentID())
		})
	}
}

func TestPaymentEvent_ExternalReferencePrefersDataField(t *testing.T) {
	raw := `{"data":{"external_reference":"from-data","metadata":{"external_reference":"from-metadata"}}}`
	event, err := ParsePaymentEvent([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "from-data", event.ExternalReference())

	raw = `{"data":{"metadata":{"external_reference":"from-metadata"}}}`
	event, err = ParsePaymentEvent([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "from-metadata", event.ExternalReference())
}

func TestPaymentEvent_IsPhysicalSale(t *testing.T) {
	tests := []struct {
		saleType string
		want     bool
	}{
		{"physical", true},
		{"POS", true},
		{"online", false},
		{"", false},
	}

	for _, tt := range tests {
		event := &PaymentEvent{}
		event.Data.Metadata.SaleType = tt.saleType
		assert.Equal(t, tt.want, event.IsPhysicalSale(), "sale_type %q", tt.saleType)
	}
}

func strPtr(s string) *string {
	return &s
}
