package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/clean"
)

// Ensure LoggingCorrector implements bookvox.Corrector.
var _ bookvox.Corrector = (*LoggingCorrector)(nil)

// LoggingCorrector wraps a Corrector with debug logging of each round trip.
type LoggingCorrector struct {
	next     bookvox.Corrector
	provider string
	logger   *slog.Logger
}

// NewLoggingCorrector creates a new LoggingCorrector.
func NewLoggingCorrector(next bookvox.Corrector, provider string, logger *slog.Logger) *LoggingCorrector {
	return &LoggingCorrector{next: next, provider: provider, logger: logger}
}

// Correct delegates to the wrapped corrector and logs the operation.
func (c *LoggingCorrector) Correct(ctx context.Context, req *bookvox.CorrectionRequest) (out string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("correct",
			"provider", c.provider,
			"tier", req.Tier.String(),
			"in_bytes", len(req.SourceText),
			"out_bytes", len(out),
			"hash", clean.ComputeHash(req.SourceText),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Correct(ctx, req)
}
