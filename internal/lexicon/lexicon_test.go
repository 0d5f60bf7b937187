package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLiteral_AllAlphabetSymbols(t *testing.T) {
	symbols := []string{
		"a", "ch", "e", "h", "i", "k", "l", "ll", "m", "n",
		"ñ", "p", "q", "r", "s", "sh", "t", "u", "w", "y",
	}

	assert.Equal(t, len(symbols), Size())

	for _, s := range symbols {
		assert.True(t, IsLiteral(s), "expected %q to be a literal", s)
	}
}

func TestIsLiteral_NonSymbols(t *testing.T) {
	for _, s := range []string{"", "b", "hola", "chh", "lll", "ab", "ñ ñ", "a "} {
		assert.False(t, IsLiteral(s), "expected %q not to be a literal", s)
	}
}

func TestIsLiteral_RequiresNormalizedInput(t *testing.T) {
	// The lookup is exact: callers normalize before consulting the set.
	assert.False(t, IsLiteral("CH"))
	assert.False(t, IsLiteral("A"))
	assert.False(t, IsLiteral(" a"))
}
