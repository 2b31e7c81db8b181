package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/clean"
	"github.com/fwojciec/bookvox/elevenlabs"
	"github.com/fwojciec/bookvox/fs"
	"github.com/fwojciec/bookvox/gemini"
	"github.com/fwojciec/bookvox/groq"
	bvslog "github.com/fwojciec/bookvox/slog"
	"github.com/fwojciec/bookvox/tesseract"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by commands taking text from "-".
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookvox"),
		kong.Description("Turn photographed book pages into clean text and speech."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bookvox --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.wire(commandName(kongCtx.Command()), cli, deps); err != nil {
		return err
	}
	return kongCtx.Run(deps)
}

// wire builds the collaborators for the selected provider. Missing
// credentials leave a collaborator unset rather than failing, so commands
// that do not need it still run.
func (m *Main) wire(cmd string, cli *CLI, deps *Dependencies) error {
	cfg, err := cli.Config()
	if err != nil {
		return err
	}
	policyFunc, err := cli.PolicyFunc()
	if err != nil {
		return err
	}
	deps.Config = cfg

	level := slog.LevelWarn
	switch {
	case cli.Verbose:
		level = slog.LevelDebug
	case cmd == "serve":
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	var corrector bookvox.Corrector
	var extractor bookvox.Extractor
	var counter bookvox.TokenCounter

	switch cli.Provider {
	case "groq":
		if cfg.CorrectionAPIKey == "" {
			fmt.Fprintln(deps.Stderr, "Hint: set GROQ_API_KEY to enable correction and vision extraction. Get a key at https://console.groq.com/keys")
			break
		}
		text, err := groq.NewModel(cfg.CorrectionAPIKey, groq.DefaultTextModel, nil)
		if err != nil {
			return err
		}
		vision, err := groq.NewModel(cfg.CorrectionAPIKey, groq.DefaultVisionModel, nil)
		if err != nil {
			return err
		}
		corrector, extractor = groq.NewCorrector(text), groq.NewExtractor(vision)

	case "gemini":
		if cfg.CorrectionAPIKey == "" {
			fmt.Fprintln(deps.Stderr, "Hint: set GEMINI_API_KEY to enable correction and vision extraction. Get a key at https://aistudio.google.com/apikey")
			break
		}
		client, err := gemini.NewClient(deps.Ctx, cfg.CorrectionAPIKey)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		corrector, extractor = gemini.NewCorrector(client, ""), gemini.NewExtractor(client, "")

	case "local":
		corrector, extractor = clean.Passthrough{}, tesseract.NewExtractor()
	}

	if corrector != nil && cli.Provider != "local" && cli.MaxTokens > 0 && needsCleaner(cmd) {
		tc, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		counter = tc
	}

	cleaner := clean.NewCleaner(nil)
	if corrector != nil {
		cleaner.Corrector = bvslog.NewLoggingCorrector(corrector, cli.Provider, logger)
	}
	cleaner.TokenCounter = counter
	cleaner.MaxInputTokens = cli.MaxTokens
	if cli.Provider != "local" && cli.Rate > 0 {
		cleaner.Limiter = clean.NewProviderLimiter(cli.Rate, 1)
	}
	cleaner.Provider = cli.Provider
	cleaner.Timeout = cli.Timeout
	cleaner.PolicyFunc = policyFunc
	cleaner.Logf = func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}
	deps.Cleaner = bvslog.NewLoggingCleaner(cleaner, logger)

	if extractor != nil {
		deps.Extractor = bvslog.NewLoggingExtractor(extractor, logger)
	}
	deps.Synthesizer = bvslog.NewLoggingSynthesizer(elevenlabs.NewSynthesizer(cfg.SynthesisAPIKey, cfg.VoiceID()), logger)
	deps.Output = fs.NewWriter(cli.Out)
	return nil
}

// needsCleaner reports whether the selected command runs the cleaning step.
func needsCleaner(cmd string) bool {
	return cmd == "clean" || cmd == "read" || cmd == "serve"
}

// commandName returns the first word of a kong command path.
func commandName(path string) string {
	name, _, _ := strings.Cut(path, " ")
	return name
}
