// Package recommend implements the recommendation pipeline: search term
// derivation, candidate aggregation from curated and external sources,
// deduplication, scoring, and final selection.
package recommend

import (
	"github.com/listoria/listoria-server/internal/domain"
)

// GenreAll is the filter value meaning "no genre restriction". The catalog
// data and the original client use the Turkish word.
const GenreAll = "hepsi"

// Request carries one recommendation query. Seeds are the titles the user
// already likes; Notes is free text weighed heavily by the scorer. Age 0
// means unknown.
type Request struct {
	Domain   domain.ContentDomain
	Seeds    []string
	Genre    string
	MinPages int
	MaxPages int
	Notes    string
	Age      int
}

// FilterGenre reports whether the request restricts results by genre.
func (r *Request) FilterGenre() bool {
	return r.Genre != "" && r.Genre != GenreAll
}

// Result is a ranked recommendation list, at most MaxResults long and
// sorted by descending score with ties in insertion order.
type Result struct {
	Domain   domain.ContentDomain `json:"domain"`
	Items    []domain.Candidate   `json:"items"`
	External int                  `json:"external_count"`
	Curated  int                  `json:"curated_count"`
}

// Pipeline limits. These mirror the product behavior: at most three adapter
// calls per request, eight items out, and a short pause between calls so a
// burst of requests stays inside provider quotas.
const (
	MaxResults        = 8
	MaxSearchTerms    = 3
	PerTermResults    = 5
	BookExternalQuota = 7
	BookCuratedQuota  = 1
	CuratedCap        = 2
	CuratedPoolCap    = 10
)
