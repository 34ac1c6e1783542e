package workbook

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes a sheet name, header or athlete name for comparison:
// surrounding space trimmed, inner runs of whitespace collapsed, diacritics
// stripped and case folded. "  José   PÉREZ " folds to "jose perez".
func Fold(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	// Transformers carry state, so each call builds its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// NameKey is the key used to join an athlete's current-week row with their
// historical rows.
func NameKey(name string) string {
	return Fold(name)
}

// squash keeps only letters and digits of a folded string.
func squash(folded string) string {
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
