package webhook

import (
	"strings"

	"github.com/linvex-software/lvx-ecommerce/internal/pkg/apperror"
	"github.com/linvex-software/lvx-ecommerce/internal/pkg/env"
)

// SecretEnvPrefix is the name pattern for per-provider webhook secrets:
// WEBHOOK_SECRET_MERCADOPAGO, WEBHOOK_SECRET_PAGSEGURO, ...
const SecretEnvPrefix = "WEBHOOK_SECRET_"

// Secrets maps a provider name to its shared webhook secret. It is built
// once at process start and passed into the verifier; nothing else reads
// secret material from the environment.
type Secrets map[string]string

// LoadSecretsFromEnv builds the secrets map for the given providers. A
// provider whose secret is unset is left out of the map, which the verifier
// reports as a configuration error when that provider is hit.
func LoadSecretsFromEnv(providers ...string) Secrets {
	secrets := make(Secrets, len(providers))
	for _, provider := range providers {
		p := strings.ToLower(strings.TrimSpace(provider))
		if p == "" {
			continue
		}
		secret := env.GetEnv(SecretEnvPrefix+strings.ToUpper(p), "")
		if secret == "" {
			continue
		}
		secrets[p] = secret
	}
	return secrets
}

// ConfiguredProviders reads the provider list from WEBHOOK_PROVIDERS
// (comma-separated), defaulting to the two built-in payment providers.
func ConfiguredProviders() []string {
	raw := env.GetEnv("WEBHOOK_PROVIDERS", "mercadopago,pagseguro")
	parts := strings.Split(raw, ",")
	providers := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			providers = append(providers, p)
		}
	}
	return providers
}

// For returns the secret for a provider. A missing secret is a fatal
// misconfiguration for that provider's requests, distinct from an invalid
// signature.
func (s Secrets) For(provider string) (string, error) {
	secret, ok := s[strings.ToLower(strings.TrimSpace(provider))]
	if !ok || secret == "" {
		return "", apperror.Newf(apperror.KindConfiguration, "no webhook secret configured for provider %q", provider)
	}
	return secret, nil
}
