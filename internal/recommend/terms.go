package recommend

import (
	"strings"

	"github.com/listoria/listoria-server/internal/domain"
)

// SearchTerms derives the external search terms for a request: the leading
// words of each seed, then the genre filter, then the first words of the
// notes, capped at MaxSearchTerms. Music seeds in "Track - Artist" form
// contribute both halves as separate terms.
func SearchTerms(req *Request) []string {
	var terms []string

	for _, seed := range req.Seeds {
		seed = strings.TrimSpace(seed)
		if seed == "" {
			continue
		}
		if req.Domain == domain.DomainMusic && strings.Contains(seed, " - ") {
			track, artist, _ := strings.Cut(seed, " - ")
			if t := strings.TrimSpace(track); t != "" {
				terms = append(terms, t)
			}
			if a := strings.TrimSpace(artist); a != "" {
				terms = append(terms, a)
			}
			continue
		}
		words := strings.Fields(seed)
		if len(words) > 2 {
			words = words[:2]
		}
		terms = append(terms, words...)
	}

	if req.FilterGenre() {
		terms = append(terms, req.Genre)
	}

	if notes := strings.Fields(req.Notes); len(notes) > 0 {
		if len(notes) > 3 {
			notes = notes[:3]
		}
		terms = append(terms, notes...)
	}

	if len(terms) > MaxSearchTerms {
		terms = terms[:MaxSearchTerms]
	}
	return terms
}
