package clean

import (
	"context"
	"sync"

	"github.com/fwojciec/bookvox"
	"golang.org/x/time/rate"
)

var _ bookvox.Limiter = (*ProviderLimiter)(nil)

// ProviderLimiter provides per-provider rate limiting using token buckets.
// Each correction provider gets its own limiter, so a slow provider does not
// throttle another.
type ProviderLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewProviderLimiter creates a ProviderLimiter allowing rps requests per
// second to each provider, with the given burst.
func NewProviderLimiter(rps float64, burst int) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    max(burst, 1),
	}
}

// Wait blocks until the rate limit allows a request to the provider.
// Returns an error if the context is canceled before the wait completes.
func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	p.mu.Lock()
	limiter, ok := p.limiters[provider]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(p.rps), p.burst)
		p.limiters[provider] = limiter
	}
	p.mu.Unlock()

	return limiter.Wait(ctx)
}
