package api

import (
	"encoding/json/v2"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listoria/listoria-server/internal/domain"
)

func musicTestCatalog() testCatalog {
	artists := []string{"Duman", "Mor ve Ötesi", "Athena", "Şebnem Ferah", "maNga"}
	items := make([]domain.Candidate, 0, len(artists)*2)
	for _, artist := range artists {
		items = append(items,
			domain.Candidate{Domain: domain.DomainMusic, Title: "Yol " + artist, Creator: artist, Genre: "rock", AgeAppropriate: true},
			domain.Candidate{Domain: domain.DomainMusic, Title: "Köprü " + artist, Creator: artist, Genre: "rock", AgeAppropriate: true},
		)
	}
	return testCatalog{domain.DomainMusic: items}
}

func TestRecommend_Music(t *testing.T) {
	ts := setupTestServer(t, musicTestCatalog())
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/recommendations/music", map[string]any{
		"seeds": []string{"Duman - Senden Daha Güzel", "Pinhani - Dön Bak Dünyaya", "Gripin - Durma Yağmur Durma"},
		"genre": "rock",
	})

	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[RecommendResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.Result.Items)
	assert.Nil(t, envelope.Data.Playlist)
}

func TestRecommend_MusicWithPlaylist(t *testing.T) {
	ts := setupTestServer(t, musicTestCatalog())
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/recommendations/music", map[string]any{
		"seeds":         []string{"Duman - Senden Daha Güzel", "Pinhani - Dön Bak Dünyaya", "Gripin - Durma Yağmur Durma"},
		"genre":         "rock",
		"with_playlist": true,
	})

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[RecommendResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.NotNil(t, envelope.Data.Playlist)
	assert.True(t, strings.HasPrefix(envelope.Data.Playlist.ID, "listoria_"))
	assert.NotEmpty(t, envelope.Data.Playlist.Tracks)
}

func TestRecommend_UnknownCategory(t *testing.T) {
	ts := setupTestServer(t, testCatalog{})
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/recommendations/podcasts", map[string]any{
		"seeds": []string{"birini", "ikisini", "üçünü"},
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRecommend_MissingSeeds(t *testing.T) {
	ts := setupTestServer(t, musicTestCatalog())
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/recommendations/music", map[string]any{
		"genre": "rock",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestRecommend_AnonymousAllowed(t *testing.T) {
	ts := setupTestServer(t, testCatalog{domain.DomainBook: {
		{Domain: domain.DomainBook, Title: "Kürk Mantolu Madonna", Creator: "Sabahattin Ali", Genre: "roman", Pages: 160, AgeAppropriate: true},
	}})
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/recommendations/books", map[string]any{
		"seeds": []string{"Tutunamayanlar", "Saatleri Ayarlama Enstitüsü", "İnce Memed"},
	})

	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestCreatePlaylist(t *testing.T) {
	ts := setupTestServer(t, testCatalog{})
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/playlists", map[string]any{
		"tracks": []string{"Duman - Senden Daha Güzel", "Athena - Ses Etme"},
		"genre":  "rock",
	})

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[map[string]any]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	id, _ := envelope.Data["id"].(string)
	assert.True(t, strings.HasPrefix(id, "listoria_"))
	assert.Equal(t, true, envelope.Data["demo"])
}

func TestCreatePlaylist_Deterministic(t *testing.T) {
	ts := setupTestServer(t, testCatalog{})
	defer ts.cleanup()

	body := map[string]any{
		"tracks": []string{"Duman - Senden Daha Güzel", "Athena - Ses Etme"},
		"genre":  "rock",
	}

	first := ts.api.Post("/api/v1/playlists", body)
	second := ts.api.Post("/api/v1/playlists", body)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCreatePlaylist_EmptyTracks(t *testing.T) {
	ts := setupTestServer(t, testCatalog{})
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/playlists", map[string]any{
		"tracks": []string{},
	})

	// Rejected either by schema validation or by the service validator.
	assert.GreaterOrEqual(t, resp.Code, 400)
}
