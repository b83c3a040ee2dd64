package webhook

// VerificationResult is what the signature verifier hands to the ingestion
// controller. It carries no payload; the controller keeps the raw body.
type VerificationResult struct {
	Provider string
	StoreID  uint
	Valid    bool
}

// EventInput is the normalized input for webhook event persistence.
type EventInput struct {
	StoreID        uint
	Provider       string
	EventType      *string
	Payload        string
	SignatureValid bool
}
