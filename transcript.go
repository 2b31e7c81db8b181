package bookvox

import (
	"context"
	"strings"
)

// RawTranscript is the text produced by the vision extraction step.
type RawTranscript struct {
	Text         string `json:"text"`
	IsDoublePage bool   `json:"isDoublePage"`
}

// Validate returns an error if the transcript has no text to clean.
func (r *RawTranscript) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return Errorf(EINVALID, "text required")
	}
	return nil
}

// CleanedTranscript is the result of one cleaning pass. It is always
// produced: when correction fails, Text falls back to OriginalText and
// Error explains why.
type CleanedTranscript struct {
	Text         string `json:"cleanedText"`
	OriginalText string `json:"originalText"`
	Error        string `json:"error,omitempty"`
	ErrorCode    string `json:"-"`

	Tier            Tier   `json:"tier"`
	PolicyVersion   string `json:"policyVersion"`
	LayoutAmbiguous bool   `json:"layoutAmbiguous,omitempty"`

	// Artifacts counts the noise found in the source text, by kind.
	Artifacts map[string]int `json:"artifacts,omitempty"`
}

// Fallback reports whether the transcript carries the original text because
// correction failed.
func (t *CleanedTranscript) Fallback() bool {
	return t.Error != ""
}

// Cleaner turns raw OCR text into a cleaned transcript.
type Cleaner interface {
	// Clean runs the full post-processing pipeline. It returns an error
	// only when the input itself is unusable (EINVALID); every other
	// failure is reported through CleanedTranscript.Error.
	Clean(ctx context.Context, raw *RawTranscript, tier Tier) (*CleanedTranscript, error)
}
