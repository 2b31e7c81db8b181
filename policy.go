package bookvox

import (
	"regexp"
	"strings"
	"unicode"
)

// PolicyVersion identifies the current correction ruleset. Bump it whenever
// the permissions or prompts of any tier change.
const PolicyVersion = "1"

// Permission is a kind of edit a policy may perform.
type Permission uint32

// Edit permissions.
const (
	AllowCharacterFixes Permission = 1 << iota
	AllowSpacingFixes
	AllowHyphenJoin
	AllowDuplicateNoise
	AllowIsolatedNoise
	AllowSymbolNoise
	AllowRuleNoise
	AllowStrayTokens
	AllowLineDrops
	AllowParagraphReflow
	AllowForcedParagraphs
	AllowMeaningRepair
)

// RepairLevel bounds how far the correction service may go when OCR has
// garbled a word beyond a simple character confusion.
type RepairLevel int

// Repair levels.
const (
	RepairNever RepairLevel = iota
	RepairObvious
	RepairBestEffort
)

var repairNames = [...]string{
	RepairNever:      "never",
	RepairObvious:    "obvious",
	RepairBestEffort: "best-effort",
}

func (l RepairLevel) String() string {
	if l < RepairNever || l > RepairBestEffort {
		return "unknown"
	}
	return repairNames[l]
}

// ParseRepairLevel parses a repair level name: never, obvious or best-effort.
func ParseRepairLevel(s string) (RepairLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for l, n := range repairNames {
		if n == name {
			return RepairLevel(l), nil
		}
	}
	return 0, Errorf(EINVALID, "unknown repair level %q", s)
}

// Policy is the ruleset attached to a tier.
type Policy struct {
	Version     string
	Tier        Tier
	Permissions Permission
	Repair      RepairLevel

	// MaxWordEdits is the largest per-word edit distance accepted between a
	// corrected word and a source word.
	MaxWordEdits int

	// EditBudget is the fraction of source content words that may come back
	// rewritten.
	EditBudget float64
}

const (
	conservativePermissions = AllowCharacterFixes | AllowSpacingFixes | AllowHyphenJoin | AllowDuplicateNoise
	balancedPermissions     = conservativePermissions | AllowIsolatedNoise | AllowSymbolNoise | AllowRuleNoise |
		AllowLineDrops | AllowParagraphReflow | AllowMeaningRepair
	aggressivePermissions = balancedPermissions | AllowStrayTokens | AllowForcedParagraphs
)

var policies = [...]Policy{
	TierConservative: {
		Version:      PolicyVersion,
		Tier:         TierConservative,
		Permissions:  conservativePermissions,
		Repair:       RepairNever,
		MaxWordEdits: 1,
		EditBudget:   0.10,
	},
	TierBalanced: {
		Version:      PolicyVersion,
		Tier:         TierBalanced,
		Permissions:  balancedPermissions,
		Repair:       RepairObvious,
		MaxWordEdits: 1,
		EditBudget:   0.20,
	},
	TierAggressive: {
		Version:      PolicyVersion,
		Tier:         TierAggressive,
		Permissions:  aggressivePermissions,
		Repair:       RepairBestEffort,
		MaxWordEdits: 2,
		EditBudget:   0.35,
	},
}

// PolicyFor returns the policy of tier t. Unknown tiers get the
// conservative policy.
func PolicyFor(t Tier) Policy {
	if !t.Valid() {
		t = TierConservative
	}
	return policies[t]
}

// Allows reports whether every permission in perm is granted.
func (p Policy) Allows(perm Permission) bool {
	return p.Permissions&perm == perm
}

// WithRepair returns a copy of p using the given repair level. RepairNever
// also revokes AllowMeaningRepair.
func (p Policy) WithRepair(level RepairLevel) Policy {
	p.Repair = level
	if level == RepairNever {
		p.Permissions &^= AllowMeaningRepair
	} else {
		p.Permissions |= AllowMeaningRepair
	}
	return p
}

// NormalizeOptions returns the normalizer settings matching the policy.
func (p Policy) NormalizeOptions() NormalizeOptions {
	return NormalizeOptions{SeparateParagraphs: p.Allows(AllowForcedParagraphs)}
}

// Apply runs the deterministic part of the policy: the rule-based edits
// that need no language model. Every edit either fixes characters of an
// existing token or removes noise; nothing is added.
func (p Policy) Apply(text string) string {
	text = reLineBreak.ReplaceAllString(text, "\n")
	if p.Allows(AllowCharacterFixes) {
		text = fixCharacters(text)
	}
	if p.Allows(AllowHyphenJoin) {
		text = joinHyphenSplits(text)
	}
	if p.Allows(AllowSpacingFixes) {
		text = insertMissingSpaces(text)
	}
	text = p.dropArtifacts(text)
	if p.Allows(AllowParagraphReflow) {
		text = reflowParagraphs(text)
	}
	return text
}

// deletes reports whether the policy removes an artifact of kind.
func (p Policy) deletes(kind ArtifactKind, duplicate bool) bool {
	switch kind {
	case IsolatedNoise:
		return p.Allows(AllowIsolatedNoise) || (duplicate && p.Allows(AllowDuplicateNoise))
	case SymbolNoise:
		return p.Allows(AllowSymbolNoise)
	case RuleNoise:
		return p.Allows(AllowRuleNoise)
	case StrayToken:
		return p.Allows(AllowStrayTokens)
	case PageNumberNoise:
		return p.Allows(AllowLineDrops)
	}
	return false
}

// dropArtifacts removes the noise tokens the policy permits. A line emptied
// by deletions is removed entirely so it does not read as a paragraph break.
func (p Policy) dropArtifacts(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	for i, ln := range lines {
		ctx := Context{Line: strings.TrimSpace(ln.text)}
		if i+1 < len(lines) {
			ctx.NextLine = strings.TrimSpace(lines[i+1].text)
		}
		if len(ln.tokens) == 0 {
			out = append(out, ln.text)
			continue
		}

		kept := make([]string, 0, len(ln.tokens))
		for j, tok := range ln.tokens {
			ctx.Prev, ctx.Next = neighbors(ln.tokens, j)
			kind := Classify(tok.text, ctx)
			if p.deletes(kind, kind == IsolatedNoise && isDuplicate(tok.text, ctx)) {
				continue
			}
			kept = append(kept, tok.text)
		}

		switch {
		case len(kept) == 0:
		case len(kept) == len(ln.tokens):
			out = append(out, ln.text)
		default:
			out = append(out, strings.Join(kept, " "))
		}
	}
	return strings.Join(out, "\n")
}

var ligatures = strings.NewReplacer(
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬀ", "ff",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬅ", "st",
	"ﬆ", "st",
)

// fixCharacters repairs unambiguous character confusions: ligature glyphs,
// and digits or pipes standing inside a word ("b0njour", "a1ors", "f|eur").
// Confusions that need a dictionary (rn/m, vv/w, l/I) are left to the
// correction service.
func fixCharacters(text string) string {
	text = ligatures.Replace(text)

	runes := []rune(text)
	for i, r := range runes {
		if r != '0' && r != '1' && r != '|' {
			continue
		}
		var prev, next, after rune
		if i > 0 {
			prev = runes[i-1]
		}
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		if i+2 < len(runes) {
			after = runes[i+2]
		}
		switch {
		case unicode.IsLower(prev) && unicode.IsLower(next):
			runes[i] = lowerLookalike(r)
		case unicode.IsUpper(prev) && unicode.IsUpper(next):
			runes[i] = 'I'
			if r == '0' {
				runes[i] = 'O'
			}
		case r == '|' && (prev == 0 || unicode.IsSpace(prev)) && unicode.IsLower(next) && unicode.IsLower(after):
			runes[i] = 'l'
		}
	}
	return string(runes)
}

// lowerLookalike maps a digit or symbol to the lowercase letter OCR most
// often mistakes it for.
func lowerLookalike(r rune) rune {
	if r == '0' {
		return 'o'
	}
	return 'l'
}

var reHyphenSplit = regexp.MustCompile(`(\p{L})-[ \t]*\n[ \t]*(\p{Ll})`)

// joinHyphenSplits rejoins words hyphenated across a line break.
func joinHyphenSplits(text string) string {
	return reHyphenSplit.ReplaceAllString(text, "$1$2")
}

// insertMissingSpaces adds the space missing after punctuation glued to
// the following word.
func insertMissingSpaces(text string) string {
	lines := splitLines(text)
	var sb strings.Builder
	sb.Grow(len(text) + 16)
	last := 0
	for _, ln := range lines {
		for _, tok := range ln.tokens {
			for _, off := range missingSpaceOffsets(tok.text) {
				sb.WriteString(text[last : tok.start+off])
				sb.WriteByte(' ')
				last = tok.start + off
			}
		}
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// reflowParagraphs merges the line breaks inside each paragraph. Blank
// lines delimit paragraphs; a line opening with a dialogue dash starts a
// new one.
func reflowParagraphs(text string) string {
	var paragraphs []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			paragraphs = append(paragraphs, current.String())
			current.Reset()
		}
	}

	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		switch {
		case l == "":
			flush()
			continue
		case startsDialogue(l):
			flush()
		}
		if current.Len() > 0 && !endsWithLetterHyphen(current.String()) {
			current.WriteByte(' ')
		}
		current.WriteString(l)
	}
	flush()
	return strings.Join(paragraphs, "\n\n")
}

func startsDialogue(l string) bool {
	return strings.HasPrefix(l, "—") || strings.HasPrefix(l, "–") || strings.HasPrefix(l, "- ")
}

func endsWithLetterHyphen(s string) bool {
	body, ok := strings.CutSuffix(s, "-")
	if !ok || body == "" {
		return false
	}
	r := []rune(body)
	return unicode.IsLetter(r[len(r)-1])
}
