// Package similarity provides the fuzzy title matching used across the
// recommendation pipeline. Every comparison in the system goes through
// Ratio so dedup thresholds stay consistent between components.
package similarity

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Thresholds used by the deduplicator. Series search results come back with
// noisier titles, so the adapter-side check runs slightly looser.
const (
	DuplicateThreshold     = 0.8
	SeriesAdapterThreshold = 0.7
)

// The catalog data is Turkish, where ASCII lowercasing mangles dotted and
// dotless i. Fold with the Turkish caser instead of strings.ToLower.
var lower = cases.Lower(language.Turkish)

// Ratio returns a similarity score in [0, 1] between two strings,
// case-insensitive: 2*M/T where M is the number of matched characters and
// T the total length of both inputs. Empty inputs compare as 0 unless both
// are empty.
func Ratio(a, b string) float64 {
	a = lower.String(strings.TrimSpace(a))
	b = lower.String(strings.TrimSpace(b))
	if a == "" && b == "" {
		return 1
	}
	m := difflib.NewMatcher(explode(a), explode(b))
	return m.Ratio()
}

// Contains reports whether either folded string contains the other.
// Used alongside Ratio for the seed-overlap checks, where "Dune" should
// match "Dune Messiah" even though the ratio falls under threshold.
func Contains(a, b string) bool {
	a = lower.String(strings.TrimSpace(a))
	b = lower.String(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Fold lowercases a string with Turkish casing rules. Exported for the
// scorer, which matches note words against candidate fields.
func Fold(s string) string {
	return lower.String(s)
}

// explode splits a string into per-rune elements so the line-oriented
// matcher compares characters.
func explode(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
