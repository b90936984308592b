// Package provider defines the contract shared by the external content
// source clients. Each subpackage wraps one upstream API and normalizes
// its responses into candidates.
package provider

import (
	"context"
	"errors"

	"github.com/listoria/listoria-server/internal/domain"
)

// Sentinel errors returned by the source clients. Callers match with
// errors.Is; the pipeline degrades to curated-only results on any of them.
var (
	// ErrNoCredentials means the API key for this source is not
	// configured. Returned before any network call.
	ErrNoCredentials = errors.New("provider: no credentials configured")

	// ErrRateLimited means the upstream rejected the call with a 429.
	ErrRateLimited = errors.New("provider: rate limited")

	// ErrBadRequest means the upstream rejected the query.
	ErrBadRequest = errors.New("provider: bad request")

	// ErrServer means the upstream returned a 5xx.
	ErrServer = errors.New("provider: server error")

	// ErrMalformed means the response body could not be decoded.
	ErrMalformed = errors.New("provider: malformed response")
)

// Searcher is one external content source.
type Searcher interface {
	// Search runs a single bounded query and returns normalized
	// candidates. Missing upstream fields map to safe defaults, never
	// an error.
	Search(ctx context.Context, term string, limit int) ([]domain.Candidate, error)
}

// Error wraps a source failure with the operation and query for logs.
type Error struct {
	Op    string
	Query string
	Err   error
}

func (e *Error) Error() string {
	if e.Query != "" {
		return e.Op + " " + e.Query + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// WrapError attaches operation context to a source failure.
func WrapError(op, query string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Query: query, Err: err}
}
