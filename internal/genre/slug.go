// Package genre normalizes user-entered genre names so filter input in
// either Turkish or English lands on the curated catalog's genre labels.
package genre

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)

	// Dotless ı survives NFKD, so it is mapped by hand.
	dotlessI = strings.NewReplacer("ı", "i", "İ", "i")
)

// Slugify converts a genre name to a URL-safe slug.
// "Bilim Kurgu" -> "bilim-kurgu".
// "Kişisel Gelişim" -> "kisisel-gelisim".
// "R&B" -> "r-b".
func Slugify(s string) string {
	s = dotlessI.Replace(s)

	// Normalize unicode (decompose accented characters).
	s = norm.NFKD.String(s)

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	// Lowercase.
	s = strings.ToLower(s)

	// Replace non-alphanumeric with hyphens.
	s = nonAlphanumeric.ReplaceAllString(s, "-")

	// Collapse multiple hyphens.
	s = multipleHyphens.ReplaceAllString(s, "-")

	// Trim leading/trailing hyphens.
	s = strings.Trim(s, "-")

	return s
}
