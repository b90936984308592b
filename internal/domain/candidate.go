package domain

import "strings"

// ContentDomain identifies which recommendation pipeline an item belongs to.
type ContentDomain string

const (
	DomainBook   ContentDomain = "book"
	DomainMovie  ContentDomain = "movie"
	DomainSeries ContentDomain = "series"
	DomainMusic  ContentDomain = "music"
)

// Valid reports whether d is one of the four supported content domains.
func (d ContentDomain) Valid() bool {
	switch d {
	case DomainBook, DomainMovie, DomainSeries, DomainMusic:
		return true
	}
	return false
}

// Origin marks where a candidate came from. The selector treats curated and
// external pools differently, and cross-source duplicates resolve in favor
// of external items.
type Origin string

const (
	OriginCurated  Origin = "curated"
	OriginExternal Origin = "external"
)

// Candidate is a recommendation item flowing through the pipeline. One struct
// serves all four domains; per-domain fields stay zero where they do not
// apply (Pages for music, Seasons for films).
type Candidate struct {
	Domain         ContentDomain `json:"domain"`
	Title          string        `json:"title"`
	Creator        string        `json:"creator,omitempty"`
	Genre          string        `json:"genre,omitempty"`
	Themes         []string      `json:"themes,omitempty"`
	Style          string        `json:"style,omitempty"`
	Language       string        `json:"language,omitempty"`
	Reason         string        `json:"reason,omitempty"`
	Description    string        `json:"description,omitempty"`
	Pages          int           `json:"pages,omitempty"`
	RuntimeMinutes int           `json:"runtime_minutes,omitempty"`
	Seasons        int           `json:"seasons,omitempty"`
	Year           int           `json:"year,omitempty"`
	ImageURL       string        `json:"image_url,omitempty"`
	AgeAppropriate bool          `json:"age_appropriate"`
	Origin         Origin        `json:"origin"`
	Rating         float64       `json:"rating,omitempty"`
	Score          float64       `json:"score"`
}

// Scoreable reports whether the candidate carries the fields the scorer
// needs. Items without a title or genre are dropped before scoring rather
// than ranked at zero.
func (c *Candidate) Scoreable() bool {
	return strings.TrimSpace(c.Title) != "" && strings.TrimSpace(c.Genre) != ""
}

// ThemeText joins the candidate's themes into one searchable string.
func (c *Candidate) ThemeText() string {
	return strings.Join(c.Themes, " ")
}
