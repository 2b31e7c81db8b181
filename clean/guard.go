package clean

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/agext/levenshtein"
	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/bloom"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultFalsePositiveRate is the Bloom filter error rate used by Guard.
const DefaultFalsePositiveRate = 0.001

// minLanguageSample is the rune length below which language detection is
// not trusted.
const minLanguageSample = 200

// minLanguageConfidence is the detector confidence required on both texts
// before a language change is reported.
const minLanguageConfidence = 0.5

// Guard validates the output of a correction service against its source.
// It accepts only corrective and deletive edits: every content word of the
// corrected text must come from the source, either verbatim, as two
// adjacent source words joined, as a piece of a source word, or within
// Policy.MaxWordEdits edits of a source word.
type Guard struct {
	Policy bookvox.Policy

	// FalsePositiveRate tunes the Bloom filter holding the source words.
	// Zero means DefaultFalsePositiveRate.
	FalsePositiveRate float64
}

// NewGuard returns a Guard for tier.
func NewGuard(tier bookvox.Tier) *Guard {
	return &Guard{Policy: bookvox.PolicyFor(tier)}
}

// Check returns an EUPSTREAM error if corrected changes language,
// introduces words absent from source, rewrites more words than the policy
// budget allows or drops source content.
func (g *Guard) Check(source, corrected string) error {
	if from, to, changed := languageChanged(source, corrected); changed {
		return bookvox.Errorf(bookvox.EUPSTREAM, "correction changed the language from %s to %s", from, to)
	}

	f := newFolder()
	srcWords := f.foldAll(bookvox.Words(source))

	rate := g.FalsePositiveRate
	if rate <= 0 {
		rate = DefaultFalsePositiveRate
	}
	set := bloom.NewWordSet(uint(2*len(srcWords)), rate)
	for i, w := range srcWords {
		set.Add(w)
		if i+1 < len(srcWords) {
			set.Add(w + srcWords[i+1])
		}
	}

	var candidates []string
	for _, w := range srcWords {
		if utf8.RuneCountInString(w) >= bookvox.MinContentWordLen {
			candidates = append(candidates, w)
		}
	}
	limit := g.editLimit(len(candidates))

	edits := 0
	for _, w := range bookvox.ContentWords(corrected) {
		fw := f.fold(w)
		if set.Has(fw) || pieceOfAny(fw, srcWords) {
			continue
		}
		if !g.nearAny(fw, candidates) {
			return bookvox.Errorf(bookvox.EUPSTREAM, "correction introduced %q, which is not in the source text", w)
		}
		edits++
	}
	if edits > limit {
		return bookvox.Errorf(bookvox.EUPSTREAM, "correction rewrote %d words, over the %s budget of %d", edits, g.Policy.Tier, limit)
	}

	outStream := strings.Join(f.foldAll(bookvox.Words(corrected)), "")
	missing := 0
	seen := make(map[string]bool, len(candidates))
	for _, w := range candidates {
		if seen[w] {
			continue
		}
		seen[w] = true
		if !strings.Contains(outStream, w) {
			missing++
		}
	}
	if missing > limit+edits {
		return bookvox.Errorf(bookvox.EUPSTREAM, "correction dropped %d source words", missing)
	}

	return nil
}

// editLimit returns how many of n source content words may be rewritten.
func (g *Guard) editLimit(n int) int {
	limit := int(math.Ceil(g.Policy.EditBudget * float64(n)))
	return max(limit, 1)
}

// pieceOfAny reports whether w lies inside a single source word, as when a
// glued word is split back apart.
func pieceOfAny(w string, words []string) bool {
	for _, s := range words {
		if len(s) > len(w) && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func (g *Guard) nearAny(w string, candidates []string) bool {
	n := utf8.RuneCountInString(w)
	for _, c := range candidates {
		d := n - utf8.RuneCountInString(c)
		if d < -g.Policy.MaxWordEdits || d > g.Policy.MaxWordEdits {
			continue
		}
		if levenshtein.Distance(w, c, nil) <= g.Policy.MaxWordEdits {
			return true
		}
	}
	return false
}

// confusions maps character sequences OCR commonly mistakes for one
// another onto a single form.
var confusions = strings.NewReplacer(
	"rn", "m",
	"vv", "w",
	"0", "o",
	"1", "l",
)

// folder reduces words to a comparison form: lowercase, without diacritics,
// with OCR confusions collapsed. A folder is not safe for concurrent use.
type folder struct {
	t transform.Transformer
}

func newFolder() *folder {
	return &folder{t: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)}
}

func (f *folder) fold(w string) string {
	w = strings.ToLower(w)
	if s, _, err := transform.String(f.t, w); err == nil {
		w = s
	}
	return confusions.Replace(w)
}

func (f *folder) foldAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = f.fold(w)
	}
	return out
}

// languageChanged reports whether both texts are long enough to detect
// their language confidently and the detected languages differ.
func languageChanged(source, corrected string) (from, to string, changed bool) {
	if utf8.RuneCountInString(source) < minLanguageSample || utf8.RuneCountInString(corrected) < minLanguageSample {
		return "", "", false
	}
	src := whatlanggo.Detect(source)
	out := whatlanggo.Detect(corrected)
	if src.Confidence < minLanguageConfidence || out.Confidence < minLanguageConfidence {
		return "", "", false
	}
	if src.Lang == out.Lang {
		return "", "", false
	}
	return src.Lang.Iso6391(), out.Lang.Iso6391(), true
}
