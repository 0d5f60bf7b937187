// Package lexicon provides the fast-path lookup for inputs that bypass the
// translation model entirely.
package lexicon

// kichwaAlphabet holds the symbols of the Ecuadorian Kichwa alphabet. These
// are atomic symbols with no distinct Kichwa rendering, so their translation
// is the input itself.
var kichwaAlphabet = map[string]struct{}{
	"a": {}, "ch": {}, "e": {}, "h": {}, "i": {},
	"k": {}, "l": {}, "ll": {}, "m": {}, "n": {},
	"ñ": {}, "p": {}, "q": {}, "r": {}, "s": {},
	"sh": {}, "t": {}, "u": {}, "w": {}, "y": {},
}

// IsLiteral reports whether the normalized text is an alphabet symbol that
// translates to itself. The input must already be trimmed and lower-cased.
func IsLiteral(normalized string) bool {
	_, ok := kichwaAlphabet[normalized]
	return ok
}

// Size returns the number of entries in the alphabet set.
func Size() int {
	return len(kichwaAlphabet)
}
