package planner

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// STRING NORMALIZATION - Case- and diacritic-insensitive matching
// =============================================================================
// Trade names, item names, and venue names arrive as free text, often with
// accented vowels ("Fotografía", "Decoración"). Every rule and availability
// match folds both sides to lower-case unaccented form so locale differences
// never produce false negatives.

// Fold lower-cases, trims, and strips combining diacritic marks.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// containsFold reports whether haystack contains needle after folding both.
func containsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// anyContainsFold reports whether any candidate contains any of the needles.
func anyContainsFold(candidates []string, needles ...string) bool {
	for _, c := range candidates {
		for _, n := range needles {
			if containsFold(c, n) {
				return true
			}
		}
	}
	return false
}
