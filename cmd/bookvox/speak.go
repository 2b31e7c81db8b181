package main

import (
	"fmt"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/clean"
)

// Run executes the speak command.
func (c *SpeakCmd) Run(deps *Dependencies) error {
	text, err := readText(deps.Stdin, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}

	audio, err := deps.Synthesizer.Synthesize(deps.Ctx, text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}

	path, err := deps.Output.WriteAudio(deps.Ctx, outputName(c.File, "speech"), audio)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s (%s)\n", path, clean.FormatBytes(len(audio.Data)))
	return nil
}
