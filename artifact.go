package bookvox

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ArtifactKind classifies a piece of OCR noise.
type ArtifactKind int

// Artifact kinds detected by Classify.
const (
	NotArtifact ArtifactKind = iota

	// IsolatedNoise is a run of meaningless 1-2 letter tokens ("h h", "aa bb").
	IsolatedNoise

	// SymbolNoise is a token made only of stray symbols (|, ~, ^, _, quotes).
	SymbolNoise

	// RuleNoise is a run of three or more hyphens, underscores or similar.
	RuleNoise

	// StrayToken is a lone short token that is not a known word.
	StrayToken

	// HyphenSplit is a word hyphenated across a line break ("indé-\npendance").
	HyphenSplit

	// MissingSpace is a punctuation mark glued to the next word ("mot.Mot").
	MissingSpace

	// PageNumberNoise is a line holding nothing but a page number.
	PageNumberNoise
)

var artifactNames = [...]string{
	NotArtifact:     "none",
	IsolatedNoise:   "isolated_noise",
	SymbolNoise:     "symbol_noise",
	RuleNoise:       "rule_noise",
	StrayToken:      "stray_token",
	HyphenSplit:     "hyphen_split",
	MissingSpace:    "missing_space",
	PageNumberNoise: "page_number",
}

func (k ArtifactKind) String() string {
	if k < 0 || int(k) >= len(artifactNames) {
		return "unknown"
	}
	return artifactNames[k]
}

// Context describes the surroundings of a token being classified.
type Context struct {
	// Prev and Next are the neighboring tokens on the same line,
	// empty at the line edges.
	Prev, Next string

	// Line is the trimmed line containing the token.
	Line string

	// NextLine is the trimmed line following the token's line.
	NextLine string
}

// Artifact is a classified token located in a scanned text.
type Artifact struct {
	Kind ArtifactKind
	Text string

	// Start and End are byte offsets into the scanned text. For
	// MissingSpace they are equal and mark the insertion point; for
	// HyphenSplit they span the hyphen up to the continuation.
	Start, End int

	// Duplicate marks IsolatedNoise that exactly repeats the token before it.
	Duplicate bool
}

// Classify decides whether token is OCR noise. Classification is advisory:
// the active Policy decides which kinds are acted on.
func Classify(token string, ctx Context) ArtifactKind {
	switch {
	case token == "":
		return NotArtifact
	case token == ctx.Line && isPageNumber(token):
		return PageNumberNoise
	case ctx.Next == "" && isHyphenSplit(token, ctx.NextLine):
		return HyphenSplit
	case isRule(token):
		return RuleNoise
	case isSymbolNoise(token):
		return SymbolNoise
	case len(missingSpaceOffsets(token)) > 0:
		return MissingSpace
	case isIsolatedNoise(token, ctx):
		return IsolatedNoise
	case isStray(token):
		return StrayToken
	}
	return NotArtifact
}

// Scan classifies every token of text and returns the artifacts found,
// in text order.
func Scan(text string) []Artifact {
	var artifacts []Artifact
	lines := splitLines(text)
	for i, ln := range lines {
		ctx := Context{Line: strings.TrimSpace(ln.text)}
		if i+1 < len(lines) {
			ctx.NextLine = strings.TrimSpace(lines[i+1].text)
		}
		for j, tok := range ln.tokens {
			ctx.Prev, ctx.Next = neighbors(ln.tokens, j)
			kind := Classify(tok.text, ctx)
			switch kind {
			case NotArtifact:
				continue
			case PageNumberNoise:
				artifacts = append(artifacts, Artifact{Kind: kind, Text: tok.text, Start: ln.start, End: ln.end})
			case HyphenSplit:
				end := ln.end
				if i+1 < len(lines) {
					next := lines[i+1]
					end = next.start
					if len(next.tokens) > 0 {
						end = next.tokens[0].start
					}
				}
				artifacts = append(artifacts, Artifact{Kind: kind, Text: tok.text, Start: tok.end - 1, End: end})
			case MissingSpace:
				for _, off := range missingSpaceOffsets(tok.text) {
					artifacts = append(artifacts, Artifact{Kind: kind, Text: tok.text, Start: tok.start + off, End: tok.start + off})
				}
			default:
				artifacts = append(artifacts, Artifact{
					Kind:      kind,
					Text:      tok.text,
					Start:     tok.start,
					End:       tok.end,
					Duplicate: kind == IsolatedNoise && isDuplicate(tok.text, ctx),
				})
			}
		}
	}
	return artifacts
}

// CountArtifacts tallies artifacts by kind name.
func CountArtifacts(artifacts []Artifact) map[string]int {
	if len(artifacts) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, a := range artifacts {
		counts[a.Kind.String()]++
	}
	return counts
}

type token struct {
	text       string
	start, end int
}

type line struct {
	text       string
	start, end int // end excludes the newline
	tokens     []token
}

// splitLines breaks text into lines of whitespace-separated tokens,
// keeping byte offsets into text.
func splitLines(text string) []line {
	var lines []line
	start := 0
	for {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}
		lines = append(lines, line{
			text:   text[start:end],
			start:  start,
			end:    end,
			tokens: fields(text[start:end], start),
		})
		if end == len(text) {
			return lines
		}
		start = end + 1
	}
}

func fields(s string, offset int) []token {
	var tokens []token
	begin := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if begin >= 0 {
				tokens = append(tokens, token{text: s[begin:i], start: offset + begin, end: offset + i})
				begin = -1
			}
			continue
		}
		if begin < 0 {
			begin = i
		}
	}
	if begin >= 0 {
		tokens = append(tokens, token{text: s[begin:], start: offset + begin, end: offset + len(s)})
	}
	return tokens
}

func neighbors(tokens []token, i int) (prev, next string) {
	if i > 0 {
		prev = tokens[i-1].text
	}
	if i+1 < len(tokens) {
		next = tokens[i+1].text
	}
	return prev, next
}

func isPageNumber(s string) bool {
	if s == "" || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isHyphenSplit(token, nextLine string) bool {
	body, ok := strings.CutSuffix(token, "-")
	if !ok || body == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(body)
	first, _ := utf8.DecodeRuneInString(nextLine)
	return unicode.IsLetter(last) && unicode.IsLower(first)
}

func isRule(s string) bool {
	if utf8.RuneCountInString(s) < 3 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("-_=~*—–", r) {
			return false
		}
	}
	return true
}

const noiseSymbols = "|~^_\\\"'`‘’“”„¦•"

func isSymbolNoise(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(noiseSymbols, r) {
			return false
		}
	}
	return true
}

// missingSpaceOffsets returns the byte offsets in s where a space is
// missing after punctuation: "mot.Mot" needs one after the period,
// "mot,mot" after the comma.
func missingSpaceOffsets(s string) []int {
	var offsets []int
	runes := []rune(s)
	pos := 0
	for i, r := range runes {
		pos += utf8.RuneLen(r)
		if i < 2 || i+2 >= len(runes) {
			continue
		}
		a, b := runes[i-2], runes[i-1]
		c, d := runes[i+1], runes[i+2]
		switch r {
		case '.', '!', '?':
			if unicode.IsLower(a) && unicode.IsLower(b) && unicode.IsUpper(c) && unicode.IsLower(d) {
				offsets = append(offsets, pos)
			}
		case ',', ';':
			if unicode.IsLetter(a) && unicode.IsLetter(b) && unicode.IsLetter(c) && unicode.IsLetter(d) {
				offsets = append(offsets, pos)
			}
		}
	}
	return offsets
}

// knownShortWords are legitimate one- and two-letter words that must never
// be taken for isolated-letter noise.
var knownShortWords = map[string]bool{
	// French
	"a": true, "à": true, "y": true, "ô": true, "ah": true, "oh": true, "eh": true, "hé": true,
	"le": true, "la": true, "de": true, "du": true, "un": true, "en": true, "et": true,
	"il": true, "je": true, "tu": true, "on": true, "ne": true, "se": true, "ce": true,
	"me": true, "te": true, "ma": true, "ta": true, "sa": true, "ou": true, "où": true,
	"si": true, "ni": true, "au": true, "ça": true, "lu": true, "vu": true, "eu": true,
	"pu": true, "su": true, "dû": true, "nu": true, "va": true, "ai": true, "as": true,
	"es": true, "mi": true, "ré": true, "do": true, "né": true, "os": true,
	"là": true, "çà": true, "mû": true, "ex": true, "ès": true,
	// Abbreviations written without a period
	"mr": true, "st": true, "km": true, "kg": true, "cm": true, "mm": true,
	"dr": true, "cf": true,
	// English
	"i": true, "an": true, "at": true, "be": true, "by": true, "go": true, "he": true,
	"if": true, "in": true, "is": true, "it": true, "my": true, "no": true, "of": true,
	"or": true, "so": true, "to": true, "up": true, "us": true, "we": true, "am": true,
	"ok": true,
}

var romanNumerals = map[string]bool{
	"i": true, "ii": true, "iv": true, "v": true, "vi": true, "ix": true, "x": true, "xi": true,
}

func isShortLetters(s string) bool {
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n > 0 && n <= 2
}

func isKnownShort(s string) bool {
	lower := strings.ToLower(s)
	if knownShortWords[lower] {
		return true
	}
	return s == strings.ToUpper(s) && romanNumerals[lower]
}

func isNoiseShort(s string) bool {
	return isShortLetters(s) && !isKnownShort(s)
}

// isDuplicate reports a token repeating the one just before it. The first
// token of a run is never a duplicate, so deleting duplicates keeps one copy.
func isDuplicate(token string, ctx Context) bool {
	return token == ctx.Prev
}

func isIsolatedNoise(token string, ctx Context) bool {
	if !isShortLetters(token) {
		return false
	}
	if isDuplicate(token, ctx) {
		return true
	}
	return !isKnownShort(token) && (isNoiseShort(ctx.Prev) || isNoiseShort(ctx.Next))
}

// isStray reports a lone short token that is not a word: "x", "é,", "+".
// Known words, initials ("M."), elisions ("l'"), numbers, currency signs
// and bare punctuation are kept.
func isStray(s string) bool {
	if utf8.RuneCountInString(s) > 2 {
		return false
	}
	core := strings.TrimFunc(s, unicode.IsPunct)
	if core == "" || isKnownShort(core) {
		return false
	}
	if isShortLetters(core) && (strings.HasSuffix(s, ".") || strings.HasSuffix(s, "'") || strings.HasSuffix(s, "’")) {
		return false
	}
	for _, r := range core {
		if unicode.IsDigit(r) || unicode.Is(unicode.Sc, r) {
			return false
		}
	}
	return true
}
