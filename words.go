package bookvox

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinContentWordLen is the rune length from which a token counts as a
// content word.
const MinContentWordLen = 4

// ContentWords returns the lowercased alphanumeric tokens of text that are
// at least MinContentWordLen runes long, in order of appearance.
func ContentWords(text string) []string {
	var words []string
	for _, w := range Words(text) {
		if utf8.RuneCountInString(w) >= MinContentWordLen {
			words = append(words, w)
		}
	}
	return words
}

// Words returns every lowercased alphanumeric token of text.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
