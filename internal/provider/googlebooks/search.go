package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/provider"
)

type volumesResponse struct {
	TotalItems int         `json:"totalItems"`
	Items      []rawVolume `json:"items"`
}

type rawVolume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title       string   `json:"title"`
		Authors     []string `json:"authors"`
		PageCount   int      `json:"pageCount"`
		Categories  []string `json:"categories"`
		Description string   `json:"description"`
	} `json:"volumeInfo"`
}

// Search queries the volumes endpoint and normalizes results into book
// candidates. Missing upstream fields fall back to placeholder values the
// rest of the pipeline understands.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]domain.Candidate, error) {
	if !c.Configured() {
		return nil, provider.WrapError("googlebooks.search", term, provider.ErrNoCredentials)
	}
	if err := c.wait(ctx); err != nil {
		return nil, provider.WrapError("googlebooks.search", term, err)
	}

	params := url.Values{}
	params.Set("q", term)
	params.Set("maxResults", fmt.Sprintf("%d", limit))
	params.Set("key", c.apiKey)
	params.Set("printType", "books")
	params.Set("orderBy", "relevance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/volumes?"+params.Encode(), nil)
	if err != nil {
		return nil, provider.WrapError("googlebooks.search", term, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.WrapError("googlebooks.search", term, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, provider.WrapError("googlebooks.search", term, provider.ErrRateLimited)
	case resp.StatusCode >= 500:
		return nil, provider.WrapError("googlebooks.search", term, provider.ErrServer)
	case resp.StatusCode >= 400:
		return nil, provider.WrapError("googlebooks.search", term, provider.ErrBadRequest)
	}

	var body volumesResponse
	if err := json.UnmarshalRead(resp.Body, &body); err != nil {
		return nil, provider.WrapError("googlebooks.search", term, provider.ErrMalformed)
	}

	c.logger.Debug("google books search", "term", term, "count", len(body.Items))

	results := make([]domain.Candidate, 0, len(body.Items))
	for i := range body.Items {
		info := &body.Items[i].VolumeInfo
		title := info.Title
		if title == "" {
			title = "Bilinmeyen"
		}
		author := strings.Join(info.Authors, ", ")
		if author == "" {
			author = "Bilinmeyen Yazar"
		}
		genre := strings.Join(info.Categories, ", ")
		if genre == "" {
			genre = "Genel"
		}
		desc := info.Description
		if desc != "" {
			if r := []rune(desc); len(r) > 200 {
				desc = string(r[:200])
			}
			desc += "..."
		}
		results = append(results, domain.Candidate{
			Domain:         domain.DomainBook,
			Title:          title,
			Creator:        author,
			Genre:          genre,
			Themes:         info.Categories,
			Style:          "api_data",
			Reason:         "Google Books'tan önerilen: " + info.Title,
			Description:    desc,
			Pages:          info.PageCount,
			AgeAppropriate: true,
			Origin:         domain.OriginExternal,
		})
	}
	return results, nil
}
