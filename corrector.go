package bookvox

import "context"

// CorrectionRequest is the input handed to a language-correction service.
type CorrectionRequest struct {
	// SourceText is the text after layout resolution and the local rule pass.
	SourceText string

	// TierPrompt is the instruction set describing the permitted edits.
	TierPrompt string

	Tier         Tier
	IsDoublePage bool
}

// Corrector rewrites OCR text using an external generative service.
// Output is untrusted: callers must validate it before use.
type Corrector interface {
	Correct(ctx context.Context, req *CorrectionRequest) (string, error)
}

// Limiter throttles calls to an external service identified by key.
type Limiter interface {
	// Wait blocks until a call to key is allowed.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, key string) error
}
