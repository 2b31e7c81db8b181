package bookvox

import "context"

// OutputWriter persists pipeline results under a base name chosen by the
// caller, typically derived from the source image file.
type OutputWriter interface {
	// WriteTranscript stores a cleaned transcript and returns its location.
	WriteTranscript(ctx context.Context, name string, t *CleanedTranscript) (string, error)

	// WriteAudio stores synthesized speech and returns its location.
	WriteAudio(ctx context.Context, name string, a *Audio) (string, error)
}
