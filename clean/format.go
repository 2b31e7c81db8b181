package clean

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
)

// ComputeHash computes a short fingerprint of text using xxhash.
func ComputeHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// FormatBytes formats a text size in human-readable form.
func FormatBytes(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}

// FormatDelta formats the change in length between two texts, in runes.
func FormatDelta(before, after string) string {
	d := len([]rune(after)) - len([]rune(before))
	return fmt.Sprintf("%+d chars", d)
}
