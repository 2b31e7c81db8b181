package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/clean"
)

// Ensure LoggingCleaner implements bookvox.Cleaner.
var _ bookvox.Cleaner = (*LoggingCleaner)(nil)

// LoggingCleaner wraps a Cleaner with logging. Texts are never logged, only
// their sizes and fingerprints.
type LoggingCleaner struct {
	next   bookvox.Cleaner
	logger *slog.Logger
}

// NewLoggingCleaner creates a new LoggingCleaner.
func NewLoggingCleaner(next bookvox.Cleaner, logger *slog.Logger) *LoggingCleaner {
	return &LoggingCleaner{next: next, logger: logger}
}

// Clean delegates to the wrapped cleaner and logs the outcome. Ambiguous
// layouts and fallbacks are logged as warnings.
func (c *LoggingCleaner) Clean(ctx context.Context, raw *bookvox.RawTranscript, tier bookvox.Tier) (result *bookvox.CleanedTranscript, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"tier", tier.String(),
			"duration", time.Since(begin),
		}
		if raw != nil {
			attrs = append(attrs,
				"double_page", raw.IsDoublePage,
				"raw_chars", utf8.RuneCountInString(raw.Text),
				"hash", clean.ComputeHash(raw.Text),
			)
		}
		if err != nil {
			c.logger.Info("clean", append(attrs, "err", err)...)
			return
		}
		attrs = append(attrs,
			"cleaned_chars", utf8.RuneCountInString(result.Text),
			"delta", clean.FormatDelta(result.OriginalText, result.Text),
			"fallback", result.Fallback(),
		)
		c.logger.Info("clean", attrs...)

		if result.LayoutAmbiguous {
			c.logger.Warn("page boundary not found, keeping extraction order",
				"code", bookvox.EAMBIGUOUS,
				"hash", clean.ComputeHash(result.OriginalText),
			)
		}
		if result.Fallback() {
			c.logger.Warn("correction failed, returning original text",
				"code", result.ErrorCode,
				"error", result.Error,
			)
		}
	}(time.Now())
	return c.next.Clean(ctx, raw, tier)
}
