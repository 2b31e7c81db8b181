package main

import (
	"fmt"

	"github.com/fwojciec/bookvox"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if deps.Extractor == nil {
		err := bookvox.Errorf(bookvox.EUNAVAILABLE, "vision extraction not configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}
	img, err := readImage(c.Image, c.DoublePage)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}

	text, err := deps.Extractor.Extract(deps.Ctx, img)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, text)
	return nil
}
