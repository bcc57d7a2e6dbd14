// Package ratelimit paces calls to rate-limited external services. Each
// external dependency (mail source, embedding provider) gets its own Pacer so
// their budgets stay independent.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next call is allowed. Implementations must honor
// context cancellation. Tests substitute a no-op so suites run without
// wall-clock delays.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Limiter is a token-bucket Pacer with burst 1: calls are spaced evenly at
// the configured rate, never batched.
type Limiter struct {
	l *rate.Limiter
}

// New returns a Limiter allowing rps requests per second.
func New(rps float64) *Limiter {
	return &Limiter{l: rate.NewLimiter(rate.Limit(rps), 1)}
}

func (p *Limiter) Wait(ctx context.Context) error {
	return p.l.Wait(ctx)
}

// Nop is a Pacer that never blocks.
type Nop struct{}

func (Nop) Wait(ctx context.Context) error {
	return ctx.Err()
}
