package bookvox

import "strings"

// PageBoundaryMarker separates the left and right pages of a double-page
// capture within one transcript.
const PageBoundaryMarker = "<<<PAGE_BREAK>>>"

// Layout is a transcript put in linear reading order.
type Layout struct {
	Text string

	// Split reports that a boundary marker was found and the two pages were
	// joined left page first.
	Split bool

	// Ambiguous reports a double-page request whose page boundary could not
	// be located. Text is then left in its original order.
	Ambiguous bool
}

// ResolveLayout orders a transcript for reading. Single pages are returned
// unchanged. For double pages, the text before the marker (left page) is
// read entirely before the text after it (right page). Without exactly one
// marker the text is never reordered and the layout is flagged ambiguous.
func ResolveLayout(text string, isDoublePage bool) Layout {
	if !isDoublePage {
		return Layout{Text: text}
	}
	if strings.Count(text, PageBoundaryMarker) != 1 {
		return Layout{Text: text, Ambiguous: true}
	}
	left, right, _ := strings.Cut(text, PageBoundaryMarker)
	left = strings.TrimRight(left, " \t\r\n")
	right = strings.TrimLeft(right, " \t\r\n")
	switch {
	case left == "":
		return Layout{Text: right, Split: true}
	case right == "":
		return Layout{Text: left, Split: true}
	}
	return Layout{Text: left + "\n\n" + right, Split: true}
}
