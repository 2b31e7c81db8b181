// Package gemini implements correction, vision extraction and token
// counting using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fwojciec/bookvox"
	"google.golang.org/genai"
)

// DefaultModel is used when a constructor is given no model name.
const DefaultModel = "gemini-2.5-flash"

// MaxOutputTokens caps the length of a generated answer.
const MaxOutputTokens = 4000

// NewClient creates a Gemini API client. An empty key yields EUNAVAILABLE.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, bookvox.Errorf(bookvox.EUNAVAILABLE, "GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

func modelOrDefault(model string) string {
	if model == "" {
		return DefaultModel
	}
	return model
}

func generate(ctx context.Context, client *genai.Client, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	if client == nil {
		return "", bookvox.Errorf(bookvox.EUNAVAILABLE, "gemini client not configured")
	}
	result, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", Error(err)
	}
	if result == nil {
		return "", bookvox.Errorf(bookvox.EUPSTREAM, "gemini returned nil result")
	}
	return result.Text(), nil
}

// Error classifies an error returned by the Gemini API. Rate limiting and
// server-side failures are EUNAVAILABLE so callers may retry them; other API
// errors are EUPSTREAM. Context errors are returned unchanged.
func Error(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError {
			return bookvox.Errorf(bookvox.EUNAVAILABLE, "gemini returned %d: %s", apiErr.Code, apiErr.Message)
		}
		return bookvox.Errorf(bookvox.EUPSTREAM, "gemini returned %d: %s", apiErr.Code, apiErr.Message)
	}
	return bookvox.Errorf(bookvox.EUPSTREAM, "gemini: %v", err)
}
