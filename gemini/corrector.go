package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/bookvox"
	"google.golang.org/genai"
)

// Ensure Corrector implements bookvox.Corrector at compile time.
var _ bookvox.Corrector = (*Corrector)(nil)

// Corrector implements bookvox.Corrector using Google Gemini.
type Corrector struct {
	client *genai.Client
	model  string
}

// NewCorrector creates a new Corrector. An empty model means DefaultModel.
func NewCorrector(client *genai.Client, model string) *Corrector {
	return &Corrector{client: client, model: modelOrDefault(model)}
}

// Correct sends the source text with the tier prompt as system instruction.
func (c *Corrector) Correct(ctx context.Context, req *bookvox.CorrectionRequest) (string, error) {
	if req == nil || strings.TrimSpace(req.SourceText) == "" {
		return "", bookvox.Errorf(bookvox.EINVALID, "text required")
	}
	return generate(ctx, c.client, c.model, BuildCorrectionContents(req), BuildCorrectionConfig(req))
}

// BuildCorrectionConfig returns the GenerateContentConfig for correction calls.
func BuildCorrectionConfig(req *bookvox.CorrectionRequest) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.TierPrompt}},
		},
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: MaxOutputTokens,
	}
}

// BuildCorrectionContents builds the user message holding the text to correct.
func BuildCorrectionContents(req *bookvox.CorrectionRequest) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromText(bookvox.CorrectionInstruction+req.SourceText, genai.RoleUser),
	}
}
