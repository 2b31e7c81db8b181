package bookvox

import "strings"

// Tier is a named aggressiveness level controlling how much rewriting the
// correction stage may perform.
type Tier int

// Correction tiers, from least to most permissive.
const (
	TierConservative Tier = iota
	TierBalanced
	TierAggressive
)

// DefaultTier is used when a request does not name a tier.
const DefaultTier = TierConservative

var tierNames = [...]string{
	TierConservative: "conservative",
	TierBalanced:     "balanced",
	TierAggressive:   "aggressive",
}

// Tiers returns every tier in ascending order of permissiveness.
func Tiers() []Tier {
	return []Tier{TierConservative, TierBalanced, TierAggressive}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t >= TierConservative && t <= TierAggressive
}

func (t Tier) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return tierNames[t]
}

// ParseTier parses a tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range tierNames {
		if n == name {
			return Tier(t), nil
		}
	}
	return 0, Errorf(EINVALID, "unknown tier %q (want conservative, balanced or aggressive)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, Errorf(EINVALID, "unknown tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
