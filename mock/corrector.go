package mock

import (
	"context"

	"github.com/fwojciec/bookvox"
)

var _ bookvox.Corrector = (*Corrector)(nil)

// Corrector is a mock implementation of bookvox.Corrector.
type Corrector struct {
	CorrectFn func(ctx context.Context, req *bookvox.CorrectionRequest) (string, error)
}

func (c *Corrector) Correct(ctx context.Context, req *bookvox.CorrectionRequest) (string, error) {
	return c.CorrectFn(ctx, req)
}

var _ bookvox.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of bookvox.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, key string) error
}

func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.WaitFn(ctx, key)
}
