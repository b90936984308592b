package lastfm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/provider"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return data
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	client := NewClient("test-key", slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	client.baseURL = server.URL
	client.httpClient = server.Client()

	return client, server
}

func TestClient_Search(t *testing.T) {
	fixture := loadFixture(t, "track_search_response.json")
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "track.search", r.URL.Query().Get("method"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write(fixture)
	})
	defer server.Close()

	results, err := client.Search(context.Background(), "imagine", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, domain.DomainMusic, first.Domain)
	assert.Equal(t, "Imagine", first.Title)
	assert.Equal(t, "John Lennon", first.Creator)
	assert.Equal(t, "Last.fm", first.Genre)
	assert.InDelta(t, 1562.412, first.Rating, 0.001)
	assert.Equal(t, domain.OriginExternal, first.Origin)
	assert.True(t, first.AgeAppropriate)

	// Missing artist and a junk listener count fall back to defaults.
	second := results[1]
	assert.Equal(t, "Bilinmeyen Sanatçı", second.Creator)
	assert.Zero(t, second.Rating)
}

func TestClient_SearchEmpty(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results": {"trackmatches": {"track": []}}}`))
	})
	defer server.Close()

	results, err := client.Search(context.Background(), "nothing", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_SearchErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{name: "rate limited", statusCode: http.StatusTooManyRequests, wantErr: provider.ErrRateLimited},
		{name: "server error", statusCode: http.StatusServiceUnavailable, wantErr: provider.ErrServer},
		{name: "bad request", statusCode: http.StatusForbidden, wantErr: provider.ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			})
			defer server.Close()

			_, err := client.Search(context.Background(), "x", 5)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestClient_SearchWithoutCredentials(t *testing.T) {
	client := NewClient("", slog.New(slog.NewTextHandler(os.Stdout, nil)))
	_, err := client.Search(context.Background(), "imagine", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrNoCredentials))
}
