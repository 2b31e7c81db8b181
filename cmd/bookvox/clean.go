package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/bookvox"
)

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	text, err := readText(deps.Stdin, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}

	result, err := deps.Cleaner.Clean(deps.Ctx, &bookvox.RawTranscript{Text: text, IsDoublePage: c.DoublePage}, deps.Config.DefaultTier)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
		return err
	}
	reportWarnings(deps, result)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(deps.Stdout, result.Text)
	}

	if c.Save {
		path, err := deps.Output.WriteTranscript(deps.Ctx, outputName(c.File, "transcript"), result)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookvox.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved %s\n", path)
	}
	return nil
}

// reportWarnings tells the user when a transcript is not what they asked for.
func reportWarnings(deps *Dependencies, result *bookvox.CleanedTranscript) {
	if result.LayoutAmbiguous {
		fmt.Fprintln(deps.Stderr, "warning: page boundary not found, text kept in extraction order")
	}
	if result.Fallback() {
		fmt.Fprintf(deps.Stderr, "warning: correction failed, using the original text: %s\n", result.Error)
	}
}
