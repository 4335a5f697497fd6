package provider

import (
	"context"

	"github.com/storeops/backoffice/internal/payment/domain"
)

// Provider is the gateway strategy. Each implementation knows how to build
// the redirect URL for a pending payment, how to pull the reference id out of
// a callback payload, and how to verify the transaction with the gateway.
type Provider interface {
	Name() string
	PaymentURL(refID string) string
	ExtractRefID(payload map[string]string) string
	Verify(ctx context.Context, payment *domain.Payment, payload map[string]string) (bool, error)
}

// Registry resolves providers by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, domain.ErrUnknownProvider
	}
	return p, nil
}

// firstNonEmpty returns the first payload value present under any of the
// given keys. Gateways are inconsistent about the key they post back.
func firstNonEmpty(payload map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := payload[k]; v != "" {
			return v
		}
	}
	return ""
}
