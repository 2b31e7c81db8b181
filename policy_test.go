package bookvox_test

import (
	"testing"

	"github.com/fwojciec/bookvox"
	"github.com/stretchr/testify/assert"
)

func TestPolicyFor_HigherTiersAreSupersets(t *testing.T) {
	t.Parallel()

	tiers := bookvox.Tiers()
	for i := 1; i < len(tiers); i++ {
		lower := bookvox.PolicyFor(tiers[i-1])
		higher := bookvox.PolicyFor(tiers[i])

		assert.True(t, higher.Allows(lower.Permissions), "%s must allow everything %s allows", higher.Tier, lower.Tier)
		assert.NotEqual(t, lower.Permissions, higher.Permissions, "%s must allow more than %s", higher.Tier, lower.Tier)
		assert.GreaterOrEqual(t, higher.Repair, lower.Repair)
		assert.GreaterOrEqual(t, higher.EditBudget, lower.EditBudget)
	}
}

func TestPolicyFor_ConservativeRules(t *testing.T) {
	t.Parallel()

	p := bookvox.PolicyFor(bookvox.TierConservative)

	assert.Equal(t, bookvox.PolicyVersion, p.Version)
	assert.True(t, p.Allows(bookvox.AllowCharacterFixes|bookvox.AllowHyphenJoin|bookvox.AllowDuplicateNoise))
	assert.False(t, p.Allows(bookvox.AllowIsolatedNoise))
	assert.False(t, p.Allows(bookvox.AllowParagraphReflow))
	assert.False(t, p.Allows(bookvox.AllowLineDrops))
	assert.False(t, p.Allows(bookvox.AllowMeaningRepair))
	assert.Equal(t, bookvox.RepairNever, p.Repair)
}

func TestPolicyFor_UnknownTierIsConservative(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bookvox.PolicyFor(bookvox.TierConservative), bookvox.PolicyFor(bookvox.Tier(42)))
}

func TestPolicy_WithRepair(t *testing.T) {
	t.Parallel()

	p := bookvox.PolicyFor(bookvox.TierBalanced).WithRepair(bookvox.RepairNever)
	assert.False(t, p.Allows(bookvox.AllowMeaningRepair))
	assert.Equal(t, bookvox.RepairNever, p.Repair)

	p = bookvox.PolicyFor(bookvox.TierConservative).WithRepair(bookvox.RepairObvious)
	assert.True(t, p.Allows(bookvox.AllowMeaningRepair))
}

func TestPolicy_NormalizeOptions(t *testing.T) {
	t.Parallel()

	assert.False(t, bookvox.PolicyFor(bookvox.TierBalanced).NormalizeOptions().SeparateParagraphs)
	assert.True(t, bookvox.PolicyFor(bookvox.TierAggressive).NormalizeOptions().SeparateParagraphs)
}

func TestPolicy_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tier bookvox.Tier
		in   string
		want string
	}{
		{"joins hyphen split", bookvox.TierConservative, "indé-\npendance", "indépendance"},
		{"inserts missing space", bookvox.TierConservative, "Il dort.Le chat", "Il dort. Le chat"},
		{"fixes digits inside words", bookvox.TierConservative, "b0njour a1ors", "bonjour alors"},
		{"fixes ligatures", bookvox.TierConservative, "ﬁn du ﬂeuve", "fin du fleuve"},
		{"drops repeated isolated letter", bookvox.TierConservative, "le chat h h dort", "le chat h dort"},
		{"keeps first copy of repeated word", bookvox.TierConservative, "Il a vu le le chat noir.", "Il a vu le chat noir."},
		{"keeps repeated word in every tier", bookvox.TierAggressive, "Il a vu le le chat noir.", "Il a vu le chat noir."},
		{"keeps case variants", bookvox.TierConservative, "Le le chat", "Le le chat"},
		{"keeps non-duplicate noise", bookvox.TierConservative, "texte aa bb suite", "texte aa bb suite"},
		{"keeps symbols", bookvox.TierConservative, "Il | dort", "Il | dort"},
		{"keeps page numbers", bookvox.TierConservative, "fin\n42\ndébut", "fin\n42\ndébut"},
		{"keeps line breaks", bookvox.TierConservative, "Il était\nune fois.", "Il était\nune fois."},
		{"drops isolated letter runs", bookvox.TierBalanced, "texte aa bb suite", "texte suite"},
		{"drops symbol clusters", bookvox.TierBalanced, "Il | dort", "Il dort"},
		{"drops rules", bookvox.TierBalanced, "fin ----- début", "fin début"},
		{"drops page number lines", bookvox.TierBalanced, "Première ligne\n42\nseconde ligne", "Première ligne seconde ligne"},
		{"reflows paragraphs", bookvox.TierBalanced, "Il était\nune fois.\n\nFin.", "Il était une fois.\n\nFin."},
		{"starts paragraph at dialogue", bookvox.TierBalanced, "Il dit :\n— Bonjour.\n— Salut.", "Il dit :\n\n— Bonjour.\n\n— Salut."},
		{"keeps stray tokens", bookvox.TierBalanced, "le chat x dort", "le chat x dort"},
		{"drops stray tokens", bookvox.TierAggressive, "le chat x dort", "le chat dort"},
		{"keeps initials", bookvox.TierAggressive, "M. Dupont arrive", "M. Dupont arrive"},
		{"keeps elisions", bookvox.TierAggressive, "l' homme", "l' homme"},
		{"keeps là", bookvox.TierAggressive, "Il est là et il attend.", "Il est là et il attend."},
		{"keeps là after comma", bookvox.TierAggressive, "Je suis ici, là où tu es.", "Je suis ici, là où tu es."},
		{"keeps unpunctuated abbreviations", bookvox.TierAggressive, "Mr Smith marche 3 km", "Mr Smith marche 3 km"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := bookvox.PolicyFor(tt.tier).Apply(tt.in)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicy_ApplyNeverAddsWords(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Le  chat | dort.Il rêve\n\n\n12\nd'une sou-\nris h h grise ____ x",
		"— Viens ! dit-elle.\n— Non.\naa bb\n~^",
		"CHAPITRE I\n\nIl ét0it une f0is",
	}
	for _, tier := range bookvox.Tiers() {
		for _, in := range inputs {
			source := map[string]bool{}
			for _, w := range bookvox.Words(in) {
				source[w] = true
			}
			for _, w := range bookvox.Words(bookvox.PolicyFor(tier).Apply(in)) {
				if !source[w] {
					assert.Contains(t, []string{"souris", "était", "fois"}, w, "tier %s introduced %q", tier, w)
				}
			}
		}
	}
}

func TestPolicy_Prompt(t *testing.T) {
	t.Parallel()

	t.Run("lists only permitted edits", func(t *testing.T) {
		t.Parallel()

		conservative := bookvox.PolicyFor(bookvox.TierConservative).Prompt(bookvox.Layout{})
		aggressive := bookvox.PolicyFor(bookvox.TierAggressive).Prompt(bookvox.Layout{})

		assert.Contains(t, conservative, "indépendance")
		assert.Contains(t, conservative, "Fusionner des lignes")
		assert.NotContains(t, conservative, "numéro de page")
		assert.Contains(t, aggressive, "numéro de page")
		assert.Contains(t, aggressive, "Séparer chaque paragraphe")
		assert.NotContains(t, aggressive, "Fusionner des lignes")
	})

	t.Run("describes split double page", func(t *testing.T) {
		t.Parallel()

		prompt := bookvox.PolicyFor(bookvox.TierBalanced).Prompt(bookvox.Layout{Split: true})

		assert.Contains(t, prompt, "page GAUCHE")
	})

	t.Run("forbids reordering ambiguous layout", func(t *testing.T) {
		t.Parallel()

		prompt := bookvox.PolicyFor(bookvox.TierBalanced).Prompt(bookvox.Layout{Ambiguous: true})

		assert.Contains(t, prompt, "Conserve strictement l'ordre")
	})

	t.Run("always demands bare output", func(t *testing.T) {
		t.Parallel()

		for _, tier := range bookvox.Tiers() {
			assert.Contains(t, bookvox.PolicyFor(tier).Prompt(bookvox.Layout{}), "Retourne UNIQUEMENT le texte corrigé")
		}
	})
}

func TestParseRepairLevel(t *testing.T) {
	t.Parallel()

	level, err := bookvox.ParseRepairLevel("Best-Effort")
	assert.NoError(t, err)
	assert.Equal(t, bookvox.RepairBestEffort, level)
	assert.Equal(t, "best-effort", level.String())

	_, err = bookvox.ParseRepairLevel("always")
	assert.Equal(t, bookvox.EINVALID, bookvox.ErrorCode(err))
}
