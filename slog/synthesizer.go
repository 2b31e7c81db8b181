package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/clean"
)

// Ensure LoggingSynthesizer implements bookvox.Synthesizer.
var _ bookvox.Synthesizer = (*LoggingSynthesizer)(nil)

// LoggingSynthesizer wraps a Synthesizer with logging.
type LoggingSynthesizer struct {
	next   bookvox.Synthesizer
	logger *slog.Logger
}

// NewLoggingSynthesizer creates a new LoggingSynthesizer.
func NewLoggingSynthesizer(next bookvox.Synthesizer, logger *slog.Logger) *LoggingSynthesizer {
	return &LoggingSynthesizer{next: next, logger: logger}
}

// Synthesize delegates to the wrapped synthesizer and logs the operation.
func (s *LoggingSynthesizer) Synthesize(ctx context.Context, text string) (audio *bookvox.Audio, err error) {
	defer func(begin time.Time) {
		var size int
		if audio != nil {
			size = len(audio.Data)
		}
		s.logger.Info("synthesize",
			"chars", len([]rune(text)),
			"hash", clean.ComputeHash(text),
			"audio", clean.FormatBytes(size),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Synthesize(ctx, text)
}
