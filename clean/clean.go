// Package clean provides the OCR post-processing pipeline. It orders the
// pages of a transcript, runs the tier's local rules, delegates rewriting
// to a correction service, validates the answer and normalizes the result.
// Any failure past input validation falls back to the original text.
package clean

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/bookvox"
)

// DefaultTimeout bounds one correction round trip, retries included.
const DefaultTimeout = 30 * time.Second

var _ bookvox.Cleaner = (*Cleaner)(nil)

// Cleaner implements bookvox.Cleaner.
type Cleaner struct {
	Corrector bookvox.Corrector

	// TokenCounter and MaxInputTokens reject inputs too large for the
	// correction model before any call is made. Both are optional.
	TokenCounter   bookvox.TokenCounter
	MaxInputTokens int

	// Limiter throttles correction calls, keyed by Provider.
	Limiter  bookvox.Limiter
	Provider string

	Timeout     time.Duration
	RetryDelays []time.Duration

	// PolicyFunc returns the policy for a tier. Nil means bookvox.PolicyFor.
	PolicyFunc func(bookvox.Tier) bookvox.Policy

	// Logf, if set, receives retry notices.
	Logf LogFunc
}

// NewCleaner returns a Cleaner using corrector with default settings.
func NewCleaner(corrector bookvox.Corrector) *Cleaner {
	return &Cleaner{
		Corrector:   corrector,
		Timeout:     DefaultTimeout,
		RetryDelays: DefaultRetryDelays(),
	}
}

// Clean runs the pipeline on raw. It returns an error only for unusable
// input; correction failures yield the original text with Error set.
func (c *Cleaner) Clean(ctx context.Context, raw *bookvox.RawTranscript, tier bookvox.Tier) (*bookvox.CleanedTranscript, error) {
	if raw == nil {
		return nil, bookvox.Errorf(bookvox.EINVALID, "text required")
	}
	if err := raw.Validate(); err != nil {
		return nil, err
	}
	if !tier.Valid() {
		return nil, bookvox.Errorf(bookvox.EINVALID, "unknown tier %d", int(tier))
	}

	policy := c.policy(tier)
	layout := bookvox.ResolveLayout(raw.Text, raw.IsDoublePage)

	result := &bookvox.CleanedTranscript{
		OriginalText:    raw.Text,
		Tier:            tier,
		PolicyVersion:   policy.Version,
		LayoutAmbiguous: layout.Ambiguous,
		Artifacts:       bookvox.CountArtifacts(bookvox.Scan(layout.Text)),
	}

	text, err := c.correct(ctx, policy, layout, raw)
	if err != nil {
		result.Text = raw.Text
		result.Error = bookvox.ErrorMessage(err)
		result.ErrorCode = bookvox.ErrorCode(err)
		return result, nil
	}
	result.Text = text
	return result, nil
}

func (c *Cleaner) policy(tier bookvox.Tier) bookvox.Policy {
	if c.PolicyFunc != nil {
		return c.PolicyFunc(tier)
	}
	return bookvox.PolicyFor(tier)
}

// correct runs everything between layout resolution and the final text.
func (c *Cleaner) correct(ctx context.Context, policy bookvox.Policy, layout bookvox.Layout, raw *bookvox.RawTranscript) (string, error) {
	if c.Corrector == nil {
		return "", bookvox.Errorf(bookvox.EUNAVAILABLE, "correction service not configured")
	}

	source := policy.Apply(layout.Text)

	if c.TokenCounter != nil && c.MaxInputTokens > 0 {
		n, err := c.TokenCounter.CountTokens(ctx, source)
		if err != nil {
			return "", bookvox.Errorf(bookvox.EINTERNAL, "count tokens: %v", err)
		}
		if n > c.MaxInputTokens {
			return "", bookvox.Errorf(bookvox.EINVALID, "text is %d tokens, over the %d token limit", n, c.MaxInputTokens)
		}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, c.Provider); err != nil {
			return "", contextError(err, timeout)
		}
	}

	req := &bookvox.CorrectionRequest{
		SourceText:   source,
		TierPrompt:   policy.Prompt(layout),
		Tier:         policy.Tier,
		IsDoublePage: raw.IsDoublePage,
	}
	out, err := CorrectWithRetry(ctx, req, c.Corrector.Correct, c.Logf, c.RetryDelays)
	if err != nil {
		return "", contextError(err, timeout)
	}

	out = Sanitize(out)
	if out == "" {
		return "", bookvox.Errorf(bookvox.EUPSTREAM, "correction service returned empty text")
	}
	guard := &Guard{Policy: policy}
	if err := guard.Check(layout.Text, out); err != nil {
		return "", err
	}

	return bookvox.NormalizeWith(out, policy.NormalizeOptions()), nil
}

// contextError gives timeouts and cancellations a code. Other errors without
// one are attributed to the correction service.
func contextError(err error, timeout time.Duration) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return bookvox.Errorf(bookvox.EUNAVAILABLE, "correction timed out after %s", timeout)
	case errors.Is(err, context.Canceled):
		return bookvox.Errorf(bookvox.EUNAVAILABLE, "correction canceled")
	}
	var e *bookvox.Error
	if errors.As(err, &e) {
		return err
	}
	return bookvox.Errorf(bookvox.EUPSTREAM, "correction failed: %v", err)
}
