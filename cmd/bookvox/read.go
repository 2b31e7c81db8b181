package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/bookvox"
	"golang.org/x/sync/errgroup"
)

// Run executes the read command. Pages are processed concurrently; the
// first failing page cancels the rest.
func (c *ReadCmd) Run(deps *Dependencies) error {
	if deps.Extractor == nil {
		err := bookvox.Errorf(bookvox.EUNAVAILABLE, "vision extraction not configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for _, path := range c.Images {
		g.Go(func() error {
			lines, err := c.readPage(ctx, deps, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", path, bookvox.ErrorMessage(err))
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(deps.Stdout, l)
			}
			return nil
		})
	}
	return g.Wait()
}

// readPage runs one photograph through the pipeline and returns the report
// lines for it.
func (c *ReadCmd) readPage(ctx context.Context, deps *Dependencies, path string) ([]string, error) {
	img, err := readImage(path, c.DoublePage)
	if err != nil {
		return nil, err
	}
	text, err := deps.Extractor.Extract(ctx, img)
	if err != nil {
		return nil, err
	}

	result, err := deps.Cleaner.Clean(ctx, &bookvox.RawTranscript{Text: text, IsDoublePage: c.DoublePage}, deps.Config.DefaultTier)
	if err != nil {
		return nil, err
	}
	name := outputName(path, "page")
	transcript, err := deps.Output.WriteTranscript(ctx, name, result)
	if err != nil {
		return nil, err
	}
	lines := []string{transcript}
	if result.Fallback() {
		lines[0] += " (uncorrected: " + result.Error + ")"
	}
	if c.NoAudio {
		return lines, nil
	}

	audio, err := deps.Synthesizer.Synthesize(ctx, result.Text)
	if err != nil {
		return nil, err
	}
	audioPath, err := deps.Output.WriteAudio(ctx, name, audio)
	if err != nil {
		return nil, err
	}
	return append(lines, audioPath), nil
}
