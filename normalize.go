package bookvox

import (
	"regexp"
	"strings"
)

var (
	reLineBreak   = regexp.MustCompile(`\r\n?`)
	reMarker      = regexp.MustCompile(`[ \t]*` + regexp.QuoteMeta(PageBoundaryMarker) + `[ \t]*`)
	reHorizSpace  = regexp.MustCompile(`[\t\f\v\p{Zs}]+`)
	reBlankRun    = regexp.MustCompile(`\n{3,}`)
	reControlChar = regexp.MustCompile(`[\x00-\x08\x0B\x0E-\x1F\x7F]`)
)

// NormalizeOptions tunes Normalize.
type NormalizeOptions struct {
	// SeparateParagraphs drops empty lines and rejoins the remaining lines
	// with blank lines, so every line becomes its own paragraph.
	SeparateParagraphs bool
}

// Normalize reshapes text deterministically: boundary markers become
// paragraph breaks, horizontal whitespace collapses to one space, lines are
// trimmed, and runs of blank lines collapse to a single paragraph break.
// Normalize is idempotent.
func Normalize(text string) string {
	return NormalizeWith(text, NormalizeOptions{})
}

// NormalizeWith is Normalize with options.
func NormalizeWith(text string, opts NormalizeOptions) string {
	text = reLineBreak.ReplaceAllString(text, "\n")
	text = reControlChar.ReplaceAllString(text, "")
	text = reMarker.ReplaceAllString(text, "\n\n")
	text = reHorizSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if opts.SeparateParagraphs && l == "" {
			continue
		}
		kept = append(kept, l)
	}

	sep := "\n"
	if opts.SeparateParagraphs {
		sep = "\n\n"
	}
	text = strings.Join(kept, sep)
	text = reBlankRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
