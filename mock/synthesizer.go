package mock

import (
	"context"

	"github.com/fwojciec/bookvox"
)

var _ bookvox.Synthesizer = (*Synthesizer)(nil)

// Synthesizer is a mock implementation of bookvox.Synthesizer.
type Synthesizer struct {
	SynthesizeFn func(ctx context.Context, text string) (*bookvox.Audio, error)
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*bookvox.Audio, error) {
	return s.SynthesizeFn(ctx, text)
}
