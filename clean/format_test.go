package clean_test

import (
	"testing"

	"github.com/fwojciec/bookvox/clean"
	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	t.Parallel()

	a := clean.ComputeHash("Le chat dort.")

	assert.Len(t, a, 16)
	assert.Equal(t, a, clean.ComputeHash("Le chat dort."))
	assert.NotEqual(t, a, clean.ComputeHash("Le chat dort"))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", clean.FormatBytes(-1))
	assert.Equal(t, "500 B", clean.FormatBytes(500))
	assert.Equal(t, "1.5 kB", clean.FormatBytes(1500))
	assert.Equal(t, "2.0 MB", clean.FormatBytes(2_000_000))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~999 tokens", clean.FormatTokens(999))
	assert.Equal(t, "~2k tokens", clean.FormatTokens(1500))
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-3 chars", clean.FormatDelta("Le  chat | dort", "Le chat dort"))
	assert.Equal(t, "+1 chars", clean.FormatDelta("dort.Il", "dort. Il"))
	assert.Equal(t, "+0 chars", clean.FormatDelta("été", "été"))
}
