package mock

import (
	"context"

	"github.com/fwojciec/bookvox"
)

var _ bookvox.OutputWriter = (*OutputWriter)(nil)

// OutputWriter is a mock implementation of bookvox.OutputWriter.
type OutputWriter struct {
	WriteTranscriptFn func(ctx context.Context, name string, t *bookvox.CleanedTranscript) (string, error)
	WriteAudioFn      func(ctx context.Context, name string, a *bookvox.Audio) (string, error)
}

func (w *OutputWriter) WriteTranscript(ctx context.Context, name string, t *bookvox.CleanedTranscript) (string, error) {
	return w.WriteTranscriptFn(ctx, name, t)
}

func (w *OutputWriter) WriteAudio(ctx context.Context, name string, a *bookvox.Audio) (string, error) {
	return w.WriteAudioFn(ctx, name, a)
}
