package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/bookvox"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config bookvox.Config

	Cleaner     bookvox.Cleaner
	Extractor   bookvox.Extractor
	Synthesizer bookvox.Synthesizer
	Output      bookvox.OutputWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Provider  string        `enum:"groq,gemini,local" default:"groq" env:"BOOKVOX_PROVIDER" help:"Correction and vision provider (groq, gemini, local)"`
	Tier      string        `default:"conservative" env:"BOOKVOX_TIER" help:"Correction tier (conservative, balanced, aggressive)"`
	Repair    string        `help:"Override the tier's meaning-repair level (never, obvious, best-effort)"`
	Timeout   time.Duration `default:"30s" env:"BOOKVOX_TIMEOUT" help:"Timeout for one correction call, retries included"`
	Rate      float64       `default:"1" env:"BOOKVOX_RATE" help:"Correction calls per second"`
	MaxTokens int           `default:"8000" help:"Reject inputs over this many tokens before calling the provider"`
	Out       string        `short:"o" default:"." help:"Directory for transcripts and audio"`
	Verbose   bool          `short:"v" help:"Log debug output"`

	GroqAPIKey       string `name:"groq-api-key" env:"GROQ_API_KEY" help:"Groq API key"`
	GeminiAPIKey     string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	ElevenLabsAPIKey string `name:"elevenlabs-api-key" env:"ELEVENLABS_API_KEY" help:"ElevenLabs API key"`
	VoiceID          string `name:"voice-id" env:"VOICE_ID" help:"ElevenLabs voice"`

	Clean   CleanCmd   `cmd:"" help:"Clean OCR text read from a file or stdin"`
	Extract ExtractCmd `cmd:"" help:"Extract the text of a page photograph"`
	Speak   SpeakCmd   `cmd:"" help:"Synthesize speech from text"`
	Read    ReadCmd    `cmd:"" help:"Extract, clean and speak page photographs"`
	Serve   ServeCmd   `cmd:"" help:"Serve the pipeline over HTTP"`
}

// Config returns the service configuration selected by the flags.
func (c *CLI) Config() (bookvox.Config, error) {
	tier, err := bookvox.ParseTier(c.Tier)
	if err != nil {
		return bookvox.Config{}, err
	}
	cfg := bookvox.Config{
		SynthesisAPIKey:  c.ElevenLabsAPIKey,
		SynthesisVoiceID: c.VoiceID,
		DefaultTier:      tier,
	}
	switch c.Provider {
	case "groq":
		cfg.CorrectionAPIKey = c.GroqAPIKey
	case "gemini":
		cfg.CorrectionAPIKey = c.GeminiAPIKey
	}
	return cfg, cfg.Validate()
}

// PolicyFunc returns the policy override selected by --repair, or nil.
func (c *CLI) PolicyFunc() (func(bookvox.Tier) bookvox.Policy, error) {
	if c.Repair == "" {
		return nil, nil
	}
	level, err := bookvox.ParseRepairLevel(c.Repair)
	if err != nil {
		return nil, err
	}
	return func(t bookvox.Tier) bookvox.Policy {
		return bookvox.PolicyFor(t).WithRepair(level)
	}, nil
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	File       string `arg:"" optional:"" default:"-" help:"Text file to clean, - for stdin"`
	DoublePage bool   `short:"d" help:"Text comes from a double-page capture"`
	JSON       bool   `help:"Print the full result as JSON"`
	Save       bool   `short:"s" help:"Also write the transcript to the output directory"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Image      string `arg:"" type:"existingfile" help:"Page photograph"`
	DoublePage bool   `short:"d" help:"Image shows two facing pages"`
}

// SpeakCmd is the "speak" subcommand.
type SpeakCmd struct {
	File string `arg:"" optional:"" default:"-" help:"Text file to speak, - for stdin"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	Images      []string `arg:"" help:"Page photographs"`
	DoublePage  bool     `short:"d" help:"Images show two facing pages"`
	NoAudio     bool     `help:"Skip speech synthesis"`
	Concurrency int      `short:"c" default:"2" help:"Pages processed at once"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"BOOKVOX_ADDR" help:"Listen address"`
}
