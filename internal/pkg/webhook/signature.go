package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeaders lists the request headers checked for a webhook
// signature, in order. The first non-empty value wins.
var SignatureHeaders = []string{
	"x-signature",
	"x-hub-signature",
	"x-mercadopago-signature",
	"x-pagseguro-signature",
}

// Verifier validates that an inbound webhook body was produced by a party
// holding the provider's shared secret. It writes nothing; controllers
// consume the VerificationResult.
type Verifier struct {
	secrets Secrets
}

func NewVerifier(secrets Secrets) *Verifier {
	return &Verifier{secrets: secrets}
}

// Verify computes HMAC-SHA256 over the exact raw body bytes and compares it
// against the signature header in constant time. An absent or malformed
// signature yields Valid=false without error; only a missing provider
// secret returns an error (configuration problem, not an invalid caller).
func (v *Verifier) Verify(provider string, storeID uint, body []byte, signatureHeader string) (VerificationResult, error) {
	result := VerificationResult{Provider: provider, StoreID: storeID}

	secret, err := v.secrets.For(provider)
	if err != nil {
		return result, err
	}

	sig := NormalizeSignature(signatureHeader)
	if sig == "" {
		return result, nil
	}

	expected, err := hex.DecodeString(sig)
	if err != nil {
		// Not valid hex: invalid signature, not an error.
		return result, nil
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	// hmac.Equal is constant time and treats length mismatch as not equal.
	result.Valid = hmac.Equal(mac.Sum(nil), expected)
	return result, nil
}

// NormalizeSignature extracts the hex portion from a signature header value.
// Providers send either a bare hex string or a "<scheme>=<hex>" pair, with
// stray separators or whitespace around it.
func NormalizeSignature(raw string) string {
	sig := strings.TrimSpace(raw)
	if sig == "" {
		return ""
	}
	if idx := strings.LastIndex(sig, "="); idx >= 0 {
		sig = sig[idx+1:]
	}
	sig = strings.Trim(sig, " \t\r\n,;\"")
	return strings.ToLower(sig)
}
