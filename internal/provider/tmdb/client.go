// Package tmdb wraps The Movie Database search API as the movie and series
// candidate source. One client serves both domains.
package tmdb

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	posterBaseURL  = "https://image.tmdb.org/t/p/w300"

	// Results come back localized when possible.
	language = "tr-TR"
)

// Client provides access to the TMDB search endpoints.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	logger      *slog.Logger
}

// NewClient creates a TMDB client. An empty apiKey is allowed; every search
// then short-circuits with ErrNoCredentials.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// TMDB allows ~50 req/s; 4 per second with a small burst is plenty.
		rateLimiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 4),
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
		logger:      logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

// Movies adapts the client to the movie search contract.
type Movies struct{ *Client }

// TV adapts the client to the series search contract.
type TV struct{ *Client }
