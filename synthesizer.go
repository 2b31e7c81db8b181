package bookvox

import "context"

// Audio is a synthesized speech stream.
type Audio struct {
	Data        []byte
	ContentType string
}

// Synthesizer converts cleaned text into speech.
type Synthesizer interface {
	// Synthesize returns audio for text.
	// Returns EINVALID if text is empty.
	Synthesize(ctx context.Context, text string) (*Audio, error)
}
