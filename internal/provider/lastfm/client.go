// Package lastfm wraps the Last.fm track.search API as the music candidate
// source.
package lastfm

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

// Client provides access to the Last.fm web service.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	logger      *slog.Logger
}

// NewClient creates a Last.fm client. An empty apiKey is allowed; every
// search then short-circuits with ErrNoCredentials.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Last.fm asks for no more than 5 requests per second averaged.
		rateLimiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
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
