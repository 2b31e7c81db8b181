package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	bvhttp "github.com/fwojciec/bookvox/http"
)

// Run executes the serve command. It blocks until the context is canceled
// or the process receives SIGINT or SIGTERM.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, nil))
	}
	s := bvhttp.NewServer(bvhttp.WithLogger(logger))
	s.Addr = c.Addr
	s.Cleaner = deps.Cleaner
	s.Extractor = deps.Extractor
	s.Synthesizer = deps.Synthesizer
	s.DefaultTier = deps.Config.DefaultTier

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s (default tier %s)\n", s.URL(), s.DefaultTier)

	<-ctx.Done()
	return s.Close()
}
