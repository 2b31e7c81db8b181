package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/bookvox"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ bookvox.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens using the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model. An empty
// model means DefaultModel. The tokenizer vocabulary is downloaded on
// first use.
func NewTokenCounter(model string) (*TokenCounter, error) {
	model = modelOrDefault(model)
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("load %s tokenizer: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens text takes as a user message.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}

	return int(result.TotalTokens), nil
}
