package api

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// RateLimiter throttles outgoing requests with a token bucket.
// It only delays requests; nothing is ever dropped.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing rps requests per second with the given burst.
// Non-positive values fall back to the defaults.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = domain.DefaultRateLimit
	}
	if burst <= 0 {
		burst = domain.DefaultBurst
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until a request may proceed or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}

// Limit returns the configured rate in requests per second.
func (r *RateLimiter) Limit() float64 {
	return float64(r.limiter.Limit())
}

// Burst returns the configured burst size.
func (r *RateLimiter) Burst() int {
	return r.limiter.Burst()
}
