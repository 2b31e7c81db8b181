package groq

import (
	"context"
	"strings"

	"github.com/fwojciec/bookvox"
	"github.com/tmc/langchaingo/llms"
)

var _ bookvox.Corrector = (*Corrector)(nil)

// Corrector implements bookvox.Corrector with a Groq-hosted chat model.
type Corrector struct {
	model llms.Model
}

// NewCorrector creates a new Corrector.
func NewCorrector(model llms.Model) *Corrector {
	return &Corrector{model: model}
}

// Correct sends the tier prompt as system message and the source text as
// user message.
func (c *Corrector) Correct(ctx context.Context, req *bookvox.CorrectionRequest) (string, error) {
	if req == nil || strings.TrimSpace(req.SourceText) == "" {
		return "", bookvox.Errorf(bookvox.EINVALID, "text required")
	}
	return generate(ctx, c.model, BuildCorrectionMessages(req), 0.1)
}

// BuildCorrectionMessages returns the chat messages for a correction call.
func BuildCorrectionMessages(req *bookvox.CorrectionRequest) []llms.MessageContent {
	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.TierPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, bookvox.CorrectionInstruction+req.SourceText),
	}
}
