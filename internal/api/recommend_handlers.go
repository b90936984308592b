package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/playlist"
	"github.com/listoria/listoria-server/internal/recommend"
	"github.com/listoria/listoria-server/internal/service"
)

// categoryToDomain maps URL category segments to content domains. The URL
// uses the client-facing plural names.
var categoryToDomain = map[string]domain.ContentDomain{
	"books":  domain.DomainBook,
	"movies": domain.DomainMovie,
	"series": domain.DomainSeries,
	"music":  domain.DomainMusic,
}

func (s *Server) registerRecommendRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "recommend",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations/{category}",
		Summary:     "Get recommendations",
		Description: "Runs the recommendation pipeline for one content category (books, movies, series, or music). Authentication is optional; authenticated requests get age-aware results.",
		Tags:        []string{"Recommendations"},
	}, s.handleRecommend)

	huma.Register(s.api, huma.Operation{
		OperationID: "createPlaylist",
		Method:      http.MethodPost,
		Path:        "/api/v1/playlists",
		Summary:     "Build a playlist",
		Description: "Synthesizes a playlist descriptor from an explicit track list",
		Tags:        []string{"Recommendations"},
	}, s.handleCreatePlaylist)
}

// === DTOs ===

// RecommendRequest is the request body for a recommendation query.
type RecommendRequest struct {
	Seeds        []string `json:"seeds" validate:"required,min=3,max=10" doc:"Titles the user already likes"`
	Genre        string   `json:"genre,omitempty" validate:"omitempty,max=100" doc:"Genre filter; empty or \"hepsi\" means all"`
	MinPages     int      `json:"min_pages,omitempty" validate:"omitempty,min=0" doc:"Minimum page count (books only)"`
	MaxPages     int      `json:"max_pages,omitempty" validate:"omitempty,min=0" doc:"Maximum page count (books only)"`
	Notes        string   `json:"notes,omitempty" validate:"omitempty,max=500" doc:"Free text weighed by the scorer"`
	WithPlaylist bool     `json:"with_playlist,omitempty" doc:"Synthesize a playlist from the results (music only)"`
}

// RecommendInput wraps the recommendation request for Huma.
type RecommendInput struct {
	Category      string `path:"category" doc:"Content category: books, movies, series, or music"`
	Authorization string `header:"Authorization" doc:"Optional bearer access token"`
	Body          RecommendRequest
}

// RecommendResponse contains the ranked result and optional playlist.
type RecommendResponse struct {
	Result   *recommend.Result    `json:"result" doc:"Ranked recommendation list"`
	Playlist *playlist.Descriptor `json:"playlist,omitempty" doc:"Synthesized playlist (music only)"`
}

// RecommendOutput wraps the recommendation response for Huma.
type RecommendOutput struct {
	Body RecommendResponse
}

// PlaylistRequest is the request body for explicit playlist synthesis.
type PlaylistRequest struct {
	Tracks []string `json:"tracks" validate:"required,min=1,max=50" doc:"Track names"`
	Genre  string   `json:"genre,omitempty" validate:"omitempty,max=100" doc:"Genre used in the playlist name"`
}

// PlaylistInput wraps the playlist request for Huma.
type PlaylistInput struct {
	Body PlaylistRequest
}

// PlaylistOutput wraps the playlist descriptor for Huma.
type PlaylistOutput struct {
	Body *playlist.Descriptor
}

// === Handlers ===

func (s *Server) handleRecommend(ctx context.Context, input *RecommendInput) (*RecommendOutput, error) {
	contentDomain, ok := categoryToDomain[input.Category]
	if !ok {
		return nil, huma.Error404NotFound("unknown category " + input.Category)
	}

	// Anonymous requests are allowed; they just lose the age term.
	user := s.OptionalUser(ctx)

	resp, err := s.services.Recommend.Recommend(ctx, contentDomain, user, service.RecommendRequest{
		Seeds:        input.Body.Seeds,
		Genre:        input.Body.Genre,
		MinPages:     input.Body.MinPages,
		MaxPages:     input.Body.MaxPages,
		Notes:        input.Body.Notes,
		WithPlaylist: input.Body.WithPlaylist,
	})
	if err != nil {
		return nil, err
	}

	return &RecommendOutput{
		Body: RecommendResponse{
			Result:   resp.Result,
			Playlist: resp.Playlist,
		},
	}, nil
}

func (s *Server) handleCreatePlaylist(_ context.Context, input *PlaylistInput) (*PlaylistOutput, error) {
	desc, err := s.services.Recommend.BuildPlaylist(service.PlaylistRequest{
		Tracks: input.Body.Tracks,
		Genre:  input.Body.Genre,
	})
	if err != nil {
		return nil, err
	}

	return &PlaylistOutput{Body: desc}, nil
}
