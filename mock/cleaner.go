package mock

import (
	"context"

	"github.com/fwojciec/bookvox"
)

var _ bookvox.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of bookvox.Cleaner.
type Cleaner struct {
	CleanFn func(ctx context.Context, raw *bookvox.RawTranscript, tier bookvox.Tier) (*bookvox.CleanedTranscript, error)
}

func (c *Cleaner) Clean(ctx context.Context, raw *bookvox.RawTranscript, tier bookvox.Tier) (*bookvox.CleanedTranscript, error) {
	return c.CleanFn(ctx, raw, tier)
}
