package clean

import (
	"regexp"
	"strings"

	"github.com/fwojciec/bookvox"
)

// Sanitize strips the wrapping a chat model may put around corrected text:
// reasoning blocks, code fences, a leading "Voici le texte corrigé :" line
// and a pair of quotes around the whole answer.
func Sanitize(out string) string {
	out = reThinking.ReplaceAllString(out, "")
	out = strings.TrimSpace(out)
	out = removeCodeFence(out)
	out = removePreamble(out)
	out = removeQuoteWrapping(out)
	return strings.TrimSpace(out)
}

var reThinking = regexp.MustCompile(`(?is)<think>.*?</think>|<thinking>.*?</thinking>`)

var reCodeFence = regexp.MustCompile("(?s)^```[a-zA-Z]*[ \t]*\n(.*?)\n?```$")

func removeCodeFence(text string) string {
	if m := reCodeFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// Preambles are anchored to the start and must end with a colon on the
// first line.
var rePreambles = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^voici(?: le| la)? (?:texte|version|transcription)[^\n:]*:[ \t]*\n`),
	regexp.MustCompile(`(?i)^(?:le )?texte (?:corrigé|nettoyé)[ \t]*:[ \t]*\n`),
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:corrected |cleaned )?text[^\n:]*:[ \t]*\n`),
	regexp.MustCompile(`(?i)^(?:corrected|cleaned) text[ \t]*:[ \t]*\n`),
	regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(strings.TrimSpace(bookvox.CorrectionInstruction)) + `[ \t]*\n`),
}

func removePreamble(text string) string {
	for _, re := range rePreambles {
		if loc := re.FindStringIndex(text); loc != nil {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

var quotePairs = [][2]rune{
	{'"', '"'},
	{'«', '»'},
	{'“', '”'},
}

// removeQuoteWrapping strips a pair of outer quotes when they enclose the
// whole text and no other quote of the same kind appears inside.
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	for _, p := range quotePairs {
		if runes[0] != p[0] || runes[n-1] != p[1] {
			continue
		}
		inner := string(runes[1 : n-1])
		if strings.ContainsRune(inner, p[0]) || strings.ContainsRune(inner, p[1]) {
			return text
		}
		return strings.TrimSpace(inner)
	}
	return text
}
