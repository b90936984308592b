package lastfm

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/provider"
)

type searchResponse struct {
	Results struct {
		TrackMatches struct {
			Track []rawTrack `json:"track"`
		} `json:"trackmatches"`
	} `json:"results"`
}

// rawTrack is one track.search match. Listeners arrives as a string.
type rawTrack struct {
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	URL       string `json:"url"`
	Listeners string `json:"listeners"`
}

// Search queries track.search and normalizes matches into music candidates.
// Last.fm's search payload carries no genre or year; those stay at source
// markers and the listener count maps to the rating.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]domain.Candidate, error) {
	if !c.Configured() {
		return nil, provider.WrapError("lastfm.search", term, provider.ErrNoCredentials)
	}
	if err := c.wait(ctx); err != nil {
		return nil, provider.WrapError("lastfm.search", term, err)
	}

	params := url.Values{}
	params.Set("method", "track.search")
	params.Set("track", term)
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, provider.WrapError("lastfm.search", term, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.WrapError("lastfm.search", term, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, provider.WrapError("lastfm.search", term, provider.ErrRateLimited)
	case resp.StatusCode >= 500:
		return nil, provider.WrapError("lastfm.search", term, provider.ErrServer)
	case resp.StatusCode >= 400:
		return nil, provider.WrapError("lastfm.search", term, provider.ErrBadRequest)
	}

	var body searchResponse
	if err := json.UnmarshalRead(resp.Body, &body); err != nil {
		return nil, provider.WrapError("lastfm.search", term, provider.ErrMalformed)
	}

	tracks := body.Results.TrackMatches.Track
	c.logger.Debug("lastfm search", "term", term, "count", len(tracks))

	results := make([]domain.Candidate, 0, len(tracks))
	for i := range tracks {
		tr := &tracks[i]
		title := tr.Name
		if title == "" {
			title = "Bilinmeyen"
		}
		artist := tr.Artist
		if artist == "" {
			artist = "Bilinmeyen Sanatçı"
		}
		listeners, _ := strconv.Atoi(tr.Listeners)
		results = append(results, domain.Candidate{
			Domain:         domain.DomainMusic,
			Title:          title,
			Creator:        artist,
			Genre:          "Last.fm",
			Language:       "Bilinmeyen",
			Themes:         []string{"api_data"},
			Style:          "lastfm_data",
			Reason:         "Last.fm'den önerilen: " + tr.Name + " - " + tr.Artist,
			Rating:         float64(listeners) / 1000,
			AgeAppropriate: true,
			Origin:         domain.OriginExternal,
		})
	}
	return results, nil
}
