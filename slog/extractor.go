package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/clean"
)

// Ensure LoggingExtractor implements bookvox.Extractor.
var _ bookvox.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   bookvox.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next bookvox.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, img *bookvox.Image) (text string, err error) {
	defer func(begin time.Time) {
		var size int
		var mime string
		var double bool
		if img != nil {
			size, mime, double = len(img.Data), img.MIMEType, img.IsDoublePage
		}
		e.logger.Info("extract",
			"image", clean.FormatBytes(size),
			"mime", mime,
			"double_page", double,
			"chars", len([]rune(text)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, img)
}
