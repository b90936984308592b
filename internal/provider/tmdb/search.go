package tmdb

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"net/url"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/provider"
)

type searchResponse struct {
	Page    int         `json:"page"`
	Results []rawResult `json:"results"`
}

// rawResult covers both movie and tv payloads; movies populate Title, tv
// populates Name.
type rawResult struct {
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	OriginalLanguage string  `json:"original_language"`
	PosterPath       string  `json:"poster_path"`
	VoteAverage      float64 `json:"vote_average"`
	Adult            bool    `json:"adult"`
}

// Search returns movie candidates for the term.
func (m Movies) Search(ctx context.Context, term string, limit int) ([]domain.Candidate, error) {
	raw, err := m.search(ctx, "movie", term, limit)
	if err != nil {
		return nil, err
	}
	results := make([]domain.Candidate, 0, len(raw))
	for i := range raw {
		r := &raw[i]
		title := r.Title
		if title == "" {
			title = "Bilinmeyen"
		}
		c := normalize(r, domain.DomainMovie, title)
		c.Creator = "TMDB Verisi"
		c.AgeAppropriate = !r.Adult
		results = append(results, c)
	}
	return results, nil
}

// Search returns series candidates for the term. The search payload does
// not carry an adult flag for tv, so series default to age-appropriate.
func (t TV) Search(ctx context.Context, term string, limit int) ([]domain.Candidate, error) {
	raw, err := t.search(ctx, "tv", term, limit)
	if err != nil {
		return nil, err
	}
	results := make([]domain.Candidate, 0, len(raw))
	for i := range raw {
		r := &raw[i]
		title := r.Name
		if title == "" {
			title = "Bilinmeyen"
		}
		c := normalize(r, domain.DomainSeries, title)
		c.Creator = "TMDB Verisi"
		c.AgeAppropriate = true
		results = append(results, c)
	}
	return results, nil
}

// normalize maps the shared payload fields. Genre and runtime detail would
// need a follow-up lookup per item, so the genre stays a source marker and
// the original language stands in as the theme.
func normalize(r *rawResult, d domain.ContentDomain, title string) domain.Candidate {
	lang := r.OriginalLanguage
	if lang == "" {
		lang = "en"
	}
	reason := "TMDB'den önerilen: " + truncate(r.Overview, 100) + "..."
	poster := ""
	if r.PosterPath != "" {
		poster = posterBaseURL + r.PosterPath
	}
	return domain.Candidate{
		Domain:   d,
		Title:    title,
		Genre:    "TMDB",
		Themes:   []string{lang},
		Style:    "api_data",
		Reason:   reason,
		ImageURL: poster,
		Rating:   r.VoteAverage,
		Origin:   domain.OriginExternal,
	}
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func (c *Client) search(ctx context.Context, kind, term string, limit int) ([]rawResult, error) {
	op := "tmdb.search." + kind
	if !c.Configured() {
		return nil, provider.WrapError(op, term, provider.ErrNoCredentials)
	}
	if err := c.wait(ctx); err != nil {
		return nil, provider.WrapError(op, term, err)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", term)
	params.Set("language", language)
	params.Set("page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/"+kind+"?"+params.Encode(), nil)
	if err != nil {
		return nil, provider.WrapError(op, term, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.WrapError(op, term, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, provider.WrapError(op, term, provider.ErrRateLimited)
	case resp.StatusCode >= 500:
		return nil, provider.WrapError(op, term, provider.ErrServer)
	case resp.StatusCode >= 400:
		return nil, provider.WrapError(op, term, provider.ErrBadRequest)
	}

	var body searchResponse
	if err := json.UnmarshalRead(resp.Body, &body); err != nil {
		return nil, provider.WrapError(op, term, provider.ErrMalformed)
	}

	c.logger.Debug("tmdb search", "kind", kind, "term", term, "count", len(body.Results))

	if len(body.Results) > limit {
		body.Results = body.Results[:limit]
	}
	return body.Results, nil
}
