// Package ai wraps the external embedding provider behind a small interface
// so the classification engine can be tested with an in-memory fake.
package ai

import (
	"context"
	"fmt"
)

// Provider converts text into a fixed-dimension embedding vector.
// Implement this interface to switch embedding providers.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ProviderError wraps a transport or quota failure from the upstream
// embedding API. It is transient: callers may retry with backoff at a layer
// above this package, the provider itself never retries.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s embedding request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
