// Package textutil provides filename sanitization and text normalization
// helpers shared by the classifiers and namers.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const invalidFilenameChars = `<>:"/\|?*`

// SanitizeFilename replaces characters that are invalid in file names with
// underscores and trims surrounding whitespace.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalidFilenameChars, r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics and lowercases the input, so "Ismeretlen Előadó"
// compares equal to "ismeretlen eloado". Characters that cannot be decomposed
// pass through unchanged.
func Fold(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}
