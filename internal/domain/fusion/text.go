package fusion

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// text is free-form analysis prose folded for keyword matching.
type text string

// fold strips accents and case so "Contrarián" matches "contrarian".
func fold(s string) text {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return text(cases.Fold().String(out))
}

func (t text) has(word string) bool {
	return strings.Contains(string(t), word)
}

func (t text) hasAll(words ...string) bool {
	for _, w := range words {
		if !t.has(w) {
			return false
		}
	}
	return true
}
