package clean

import (
	"context"

	"github.com/fwojciec/bookvox"
)

var _ bookvox.Corrector = Passthrough{}

// Passthrough is a Corrector that returns its source text unchanged, so a
// Cleaner runs only the local rule pass and normalization.
type Passthrough struct{}

// Correct returns req.SourceText.
func (Passthrough) Correct(ctx context.Context, req *bookvox.CorrectionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return req.SourceText, nil
}
