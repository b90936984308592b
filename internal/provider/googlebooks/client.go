// Package googlebooks wraps the Google Books volumes API as a book
// candidate source.
package googlebooks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Client provides access to the Google Books volumes endpoint.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	logger      *slog.Logger
}

// NewClient creates a Google Books client. An empty apiKey is allowed; every
// search then short-circuits with ErrNoCredentials.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Stay well under the free-tier daily quota: 2 per second, burst of 5.
		rateLimiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 5),
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
		logger:      logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
