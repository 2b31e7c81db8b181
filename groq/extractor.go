package groq

import (
	"context"

	"github.com/fwojciec/bookvox"
	"github.com/tmc/langchaingo/llms"
)

var _ bookvox.Extractor = (*Extractor)(nil)

// Extractor implements bookvox.Extractor with a Groq-hosted vision model.
type Extractor struct {
	model llms.Model
}

// NewExtractor creates a new Extractor.
func NewExtractor(model llms.Model) *Extractor {
	return &Extractor{model: model}
}

// Extract reads the text of a page photograph.
func (e *Extractor) Extract(ctx context.Context, img *bookvox.Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", bookvox.Errorf(bookvox.EINVALID, "image required")
	}
	return generate(ctx, e.model, BuildExtractionMessages(img), 0.2)
}

// BuildExtractionMessages returns the chat message carrying the prompt and
// the image as a data URL.
func BuildExtractionMessages(img *bookvox.Image) []llms.MessageContent {
	return []llms.MessageContent{{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart(bookvox.VisionPrompt(img.IsDoublePage)),
			llms.ImageURLPart(img.DataURL()),
		},
	}}
}
