package gemini

import (
	"context"

	"github.com/fwojciec/bookvox"
	"google.golang.org/genai"
)

var _ bookvox.Extractor = (*Extractor)(nil)

// Extractor implements bookvox.Extractor using Gemini vision.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a new Extractor. An empty model means DefaultModel.
func NewExtractor(client *genai.Client, model string) *Extractor {
	return &Extractor{client: client, model: modelOrDefault(model)}
}

// Extract reads the text of a page photograph.
func (e *Extractor) Extract(ctx context.Context, img *bookvox.Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", bookvox.Errorf(bookvox.EINVALID, "image required")
	}
	return generate(ctx, e.client, e.model, BuildExtractionContents(img), BuildExtractionConfig())
}

// BuildExtractionConfig returns the GenerateContentConfig for vision calls.
func BuildExtractionConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		MaxOutputTokens: MaxOutputTokens,
	}
}

// BuildExtractionContents builds the message carrying the prompt and image.
func BuildExtractionContents(img *bookvox.Image) []*genai.Content {
	parts := []*genai.Part{
		genai.NewPartFromText(bookvox.VisionPrompt(img.IsDoublePage)),
		genai.NewPartFromBytes(img.Data, img.MIMEType),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}
