// Package slug derives filename-safe identifiers from titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Joiner replaces every run of whitespace and punctuation.
const Joiner = '_'

// Fallback is returned for titles with no letters or digits.
const Fallback = "untitled"

// Make returns the slug for title.
//
// Diacritics are stripped ("Café" -> "cafe"), letters are lower-cased, and each
// run of other characters collapses to a single Joiner. Leading and trailing
// joiners are dropped. Distinct titles may share a slug; callers detect that as
// an output path collision.
func Make(title string) string {
	folded := fold(title)

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteRune(Joiner)
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}

	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
