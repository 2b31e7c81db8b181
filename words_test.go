package bookvox_test

import (
	"testing"

	"github.com/fwojciec/bookvox"
	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"le", "chat", "dort", "l", "indépendance", "2024"},
		bookvox.Words("Le chat dort, l'indépendance 2024!"))
}

func TestContentWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"chat", "dort", "indépendance", "2024"},
		bookvox.ContentWords("Le chat dort, l'indépendance 2024!"))
	assert.Empty(t, bookvox.ContentWords("il y a un an"))
}
