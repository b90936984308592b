package tmdb

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

func TestMovies_Search(t *testing.T) {
	fixture := loadFixture(t, "movie_response.json")
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "tr-TR", r.URL.Query().Get("language"))
		w.Write(fixture)
	})
	defer server.Close()

	results, err := Movies{client}.Search(context.Background(), "inception", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, domain.DomainMovie, first.Domain)
	assert.Equal(t, "Inception", first.Title)
	assert.Equal(t, "TMDB Verisi", first.Creator)
	assert.Equal(t, "TMDB", first.Genre)
	assert.Equal(t, []string{"en"}, first.Themes)
	assert.Equal(t, "https://image.tmdb.org/t/p/w300/inception.jpg", first.ImageURL)
	assert.InDelta(t, 8.4, first.Rating, 0.001)
	assert.True(t, first.AgeAppropriate)
	assert.Equal(t, domain.OriginExternal, first.Origin)

	// Adult flag inverts into the age gate; missing poster stays empty.
	second := results[1]
	assert.False(t, second.AgeAppropriate)
	assert.Empty(t, second.ImageURL)
}

func TestMovies_SearchLimit(t *testing.T) {
	fixture := loadFixture(t, "movie_response.json")
	client, server := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write(fixture)
	})
	defer server.Close()

	results, err := Movies{client}.Search(context.Background(), "inception", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestTV_Search(t *testing.T) {
	fixture := loadFixture(t, "tv_response.json")
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/tv", r.URL.Path)
		w.Write(fixture)
	})
	defer server.Close()

	results, err := TV{client}.Search(context.Background(), "dark", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	s := results[0]
	assert.Equal(t, domain.DomainSeries, s.Domain)
	assert.Equal(t, "Dark", s.Title)
	assert.True(t, s.AgeAppropriate)
	assert.Zero(t, s.Seasons)
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{name: "rate limited", statusCode: http.StatusTooManyRequests, wantErr: provider.ErrRateLimited},
		{name: "server error", statusCode: http.StatusBadGateway, wantErr: provider.ErrServer},
		{name: "unauthorized", statusCode: http.StatusUnauthorized, wantErr: provider.ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			})
			defer server.Close()

			_, err := Movies{client}.Search(context.Background(), "x", 5)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestSearchWithoutCredentials(t *testing.T) {
	client := NewClient("", slog.New(slog.NewTextHandler(os.Stdout, nil)))
	_, err := TV{client}.Search(context.Background(), "dark", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrNoCredentials))
}
