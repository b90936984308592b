package service

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/logger"
	"github.com/listoria/listoria-server/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog map[domain.ContentDomain][]domain.Candidate

func (c stubCatalog) Items(d domain.ContentDomain) []domain.Candidate { return c[d] }

func musicCatalog() []domain.Candidate {
	artists := []string{"Duman", "Mor ve Ötesi", "Athena", "Şebnem Ferah", "maNga"}
	items := make([]domain.Candidate, 0, len(artists)*2)
	for _, artist := range artists {
		items = append(items,
			domain.Candidate{Domain: domain.DomainMusic, Title: "Yol " + artist, Creator: artist, Genre: "rock", AgeAppropriate: true},
			domain.Candidate{Domain: domain.DomainMusic, Title: "Köprü " + artist, Creator: artist, Genre: "rock", AgeAppropriate: true},
		)
	}
	return items
}

func newTestRecommendService(cat stubCatalog) *RecommendService {
	log := logger.New(logger.Config{Writer: os.Stderr, Format: "json"})
	engine := recommend.NewEngine(cat, nil, log,
		recommend.WithJitter(recommend.NoJitter{}),
		recommend.WithSearchDelay(0),
	)
	return NewRecommendService(engine, nil)
}

func TestRecommendService_Recommend(t *testing.T) {
	svc := newTestRecommendService(stubCatalog{domain.DomainMusic: musicCatalog()})

	resp, err := svc.Recommend(context.Background(), domain.DomainMusic, nil, RecommendRequest{
		Seeds: []string{"Duman - Senden Daha Güzel", "Pinhani - Dön Bak Dünyaya", "Gripin - Durma Yağmur Durma"},
		Genre: "rock",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Result.Items)
	assert.Nil(t, resp.Playlist)
}

func TestRecommendService_Recommend_WithPlaylist(t *testing.T) {
	svc := newTestRecommendService(stubCatalog{domain.DomainMusic: musicCatalog()})

	resp, err := svc.Recommend(context.Background(), domain.DomainMusic, nil, RecommendRequest{
		Seeds:        []string{"Duman - Senden Daha Güzel", "Pinhani - Dön Bak Dünyaya", "Gripin - Durma Yağmur Durma"},
		Genre:        "rock",
		WithPlaylist: true,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Playlist)
	assert.True(t, strings.HasPrefix(resp.Playlist.ID, "listoria_"))
	assert.Len(t, resp.Playlist.Tracks, len(resp.Result.Items))

	// Tracks are rendered as "Artist - Title"
	for _, track := range resp.Playlist.Tracks {
		assert.Contains(t, track, " - ")
	}
}

func TestRecommendService_Recommend_PlaylistOnlyForMusic(t *testing.T) {
	svc := newTestRecommendService(stubCatalog{domain.DomainBook: {
		{Domain: domain.DomainBook, Title: "Kürk Mantolu Madonna", Creator: "Sabahattin Ali", Genre: "roman", Pages: 160, AgeAppropriate: true},
	}})

	resp, err := svc.Recommend(context.Background(), domain.DomainBook, nil, RecommendRequest{
		Seeds:        []string{"Tutunamayanlar", "Saatleri Ayarlama Enstitüsü", "İnce Memed"},
		WithPlaylist: true,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Playlist)
}

func TestRecommendService_Recommend_Validation(t *testing.T) {
	svc := newTestRecommendService(stubCatalog{})
	ctx := context.Background()

	_, err := svc.Recommend(ctx, "podcast", nil, RecommendRequest{Seeds: []string{"a", "b", "c"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content domain")

	_, err = svc.Recommend(ctx, domain.DomainBook, nil, RecommendRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "seeds is required")

	_, err = svc.Recommend(ctx, domain.DomainBook, nil, RecommendRequest{Seeds: []string{"Tutunamayanlar"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "seeds must be at least 3")

	_, err = svc.Recommend(ctx, domain.DomainBook, nil, RecommendRequest{
		Seeds:    []string{"Tutunamayanlar", "Saatleri Ayarlama Enstitüsü", "İnce Memed"},
		MinPages: 300,
		MaxPages: 100,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "min_pages must not exceed max_pages")
}

func TestRecommendService_Recommend_UserAge(t *testing.T) {
	cat := stubCatalog{domain.DomainMovie: {
		{Domain: domain.DomainMovie, Title: "Aile Filmi", Genre: "komedi", AgeAppropriate: true},
		{Domain: domain.DomainMovie, Title: "Gece Filmi", Genre: "komedi", AgeAppropriate: false},
	}}
	svc := newTestRecommendService(cat)

	child := &domain.User{BirthDate: time.Now().AddDate(-12, 0, 0)}
	resp, err := svc.Recommend(context.Background(), domain.DomainMovie, child, RecommendRequest{
		Seeds: []string{"Zübük", "Tosun Paşa", "Kibar Feyzo"},
	})
	require.NoError(t, err)
	for _, item := range resp.Result.Items {
		assert.True(t, item.AgeAppropriate, "children should only see age appropriate items")
	}
}

func TestRecommendService_BuildPlaylist(t *testing.T) {
	svc := newTestRecommendService(stubCatalog{})

	desc, err := svc.BuildPlaylist(PlaylistRequest{
		Tracks: []string{"Duman - Senden Daha Güzel", "Athena - Ses Etme"},
		Genre:  "rock",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(desc.ID, "listoria_"))
	assert.Equal(t, 2, len(desc.Tracks))
	assert.True(t, desc.Demo)

	// Same tracks, same playlist id
	again, err := svc.BuildPlaylist(PlaylistRequest{
		Tracks: []string{"Duman - Senden Daha Güzel", "Athena - Ses Etme"},
		Genre:  "rock",
	})
	require.NoError(t, err)
	assert.Equal(t, desc.ID, again.ID)

	_, err = svc.BuildPlaylist(PlaylistRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tracks is required")
}
