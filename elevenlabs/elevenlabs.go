// Package elevenlabs implements bookvox.Synthesizer using the ElevenLabs
// text-to-speech API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/bookvox"
)

// DefaultBaseURL is the ElevenLabs API root.
const DefaultBaseURL = "https://api.elevenlabs.io"

// DefaultModel supports French among other languages.
const DefaultModel = "eleven_multilingual_v2"

// DefaultTimeout bounds one synthesis request.
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of an error response is kept in messages.
const maxErrorBody = 512

var _ bookvox.Synthesizer = (*Synthesizer)(nil)

// VoiceSettings tune the rendering of a voice.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// DefaultVoiceSettings returns the settings used for book narration.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0,
		UseSpeakerBoost: true,
	}
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Synthesizer converts text to MP3 speech.
type Synthesizer struct {
	apiKey   string
	voiceID  string
	baseURL  string
	model    string
	settings VoiceSettings
	client   *http.Client
	timeout  time.Duration
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithBaseURL points the synthesizer at another API root.
func WithBaseURL(u string) Option {
	return func(s *Synthesizer) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Synthesizer) {
		s.client = c
	}
}

// WithTimeout sets the timeout for synthesis requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Synthesizer) {
		s.timeout = d
	}
}

// WithModel selects the speech model.
func WithModel(model string) Option {
	return func(s *Synthesizer) {
		s.model = model
	}
}

// WithVoiceSettings overrides DefaultVoiceSettings.
func WithVoiceSettings(v VoiceSettings) Option {
	return func(s *Synthesizer) {
		s.settings = v
	}
}

// NewSynthesizer creates a Synthesizer speaking with voiceID. An empty
// voiceID selects bookvox.DefaultVoiceID. A missing apiKey is reported by
// Synthesize, not here.
func NewSynthesizer(apiKey, voiceID string, opts ...Option) *Synthesizer {
	if voiceID == "" {
		voiceID = bookvox.DefaultVoiceID
	}
	s := &Synthesizer{
		apiKey:   apiKey,
		voiceID:  voiceID,
		baseURL:  DefaultBaseURL,
		model:    DefaultModel,
		settings: DefaultVoiceSettings(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// Synthesize returns MP3 audio of text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*bookvox.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, bookvox.Errorf(bookvox.EINVALID, "text required")
	}
	if s.apiKey == "" {
		return nil, bookvox.Errorf(bookvox.EUNAVAILABLE, "ELEVENLABS_API_KEY not set")
	}

	body, err := json.Marshal(speechRequest{Text: text, ModelID: s.model, VoiceSettings: s.settings})
	if err != nil {
		return nil, fmt.Errorf("encode speech request: %w", err)
	}
	url := s.baseURL + "/v1/text-to-speech/" + s.voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, bookvox.Errorf(bookvox.EUNAVAILABLE, "elevenlabs: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, bookvox.Errorf(bookvox.EUPSTREAM, "read audio: %v", err)
	}
	if len(data) == 0 {
		return nil, bookvox.Errorf(bookvox.EUPSTREAM, "elevenlabs returned no audio")
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return &bookvox.Audio{Data: data, ContentType: contentType}, nil
}

// statusError maps a failed API response to an application error. Rate
// limiting and server errors are retryable.
func statusError(status int, msg string) error {
	switch {
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return bookvox.Errorf(bookvox.EUNAVAILABLE, "elevenlabs returned %d: %s", status, msg)
	case status == http.StatusUnauthorized:
		return bookvox.Errorf(bookvox.EUNAVAILABLE, "elevenlabs rejected the API key: %s", msg)
	}
	return bookvox.Errorf(bookvox.EUPSTREAM, "elevenlabs returned %d: %s", status, msg)
}
