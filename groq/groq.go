// Package groq implements correction and vision extraction against Groq's
// OpenAI-compatible chat API using langchaingo.
package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/bookvox"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// BaseURL is Groq's OpenAI-compatible endpoint.
const BaseURL = "https://api.groq.com/openai/v1"

// Models used when none is configured.
const (
	DefaultTextModel   = "llama-3.3-70b-versatile"
	DefaultVisionModel = "meta-llama/llama-4-scout-17b-16e-instruct"
)

// MaxTokens caps the length of a generated answer.
const MaxTokens = 4000

// NewModel creates a chat model client for Groq. An empty key yields
// EUNAVAILABLE.
func NewModel(apiKey, model string, client *http.Client) (llms.Model, error) {
	if apiKey == "" {
		return nil, bookvox.Errorf(bookvox.EUNAVAILABLE, "GROQ_API_KEY not set")
	}
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithBaseURL(BaseURL),
	}
	if client != nil {
		opts = append(opts, openai.WithHTTPClient(client))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}
	return llm, nil
}

func generate(ctx context.Context, model llms.Model, messages []llms.MessageContent, temperature float64) (string, error) {
	if model == nil {
		return "", bookvox.Errorf(bookvox.EUNAVAILABLE, "groq client not configured")
	}
	resp, err := model.GenerateContent(ctx, messages,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(MaxTokens),
	)
	if err != nil {
		return "", Error(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", bookvox.Errorf(bookvox.EUPSTREAM, "groq returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

var reStatus = regexp.MustCompile(`status code:? (\d{3})`)

// Error classifies an error returned by the chat API. Rate limiting and
// server-side failures are EUNAVAILABLE so callers may retry them; other
// errors are EUPSTREAM. Context errors are returned unchanged.
func Error(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if m := reStatus.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		if code == http.StatusTooManyRequests || code >= http.StatusInternalServerError {
			return bookvox.Errorf(bookvox.EUNAVAILABLE, "groq returned %d", code)
		}
		if code == http.StatusUnauthorized || code == http.StatusForbidden {
			return bookvox.Errorf(bookvox.EUNAVAILABLE, "groq rejected the API key (%d)", code)
		}
		return bookvox.Errorf(bookvox.EUPSTREAM, "groq returned %d", code)
	}
	return bookvox.Errorf(bookvox.EUPSTREAM, "groq: %v", err)
}
