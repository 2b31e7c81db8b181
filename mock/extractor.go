package mock

import (
	"context"

	"github.com/fwojciec/bookvox"
)

var _ bookvox.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bookvox.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, img *bookvox.Image) (string, error)
}

func (e *Extractor) Extract(ctx context.Context, img *bookvox.Image) (string, error) {
	return e.ExtractFn(ctx, img)
}
