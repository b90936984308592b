package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listoria/listoria-server/internal/domain"
	domainerrors "github.com/listoria/listoria-server/internal/errors"
	"github.com/listoria/listoria-server/internal/playlist"
	"github.com/listoria/listoria-server/internal/recommend"
)

// RecommendService fronts the recommendation engine for the API layer. It
// validates requests, derives the age term from the authenticated user's
// birth date, and synthesizes playlists for music results.
type RecommendService struct {
	engine *recommend.Engine
	logger *slog.Logger
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(engine *recommend.Engine, logger *slog.Logger) *RecommendService {
	return &RecommendService{
		engine: engine,
		logger: logger,
	}
}

// RecommendRequest is one recommendation query from a client. Seed count
// is enforced here; the engine itself tolerates any count.
type RecommendRequest struct {
	Seeds        []string `json:"seeds" validate:"required,min=3,max=10,dive,required"`
	Genre        string   `json:"genre"`
	MinPages     int      `json:"min_pages" validate:"min=0"`
	MaxPages     int      `json:"max_pages" validate:"min=0"`
	Notes        string   `json:"notes" validate:"max=500"`
	WithPlaylist bool     `json:"with_playlist"`
}

// RecommendResponse is the ranked result, plus a synthesized playlist for
// music queries that asked for one.
type RecommendResponse struct {
	Result   *recommend.Result    `json:"result"`
	Playlist *playlist.Descriptor `json:"playlist,omitempty"`
}

// Recommend runs the pipeline for one domain. The user supplies the age
// term; pass nil for anonymous access and the age filter stays off.
func (s *RecommendService) Recommend(
	ctx context.Context,
	contentDomain domain.ContentDomain,
	user *domain.User,
	req RecommendRequest,
) (*RecommendResponse, error) {
	if !contentDomain.Valid() {
		return nil, domainerrors.Validationf("unknown content domain %q", contentDomain)
	}
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if req.MaxPages > 0 && req.MinPages > req.MaxPages {
		return nil, domainerrors.Validation("min_pages must not exceed max_pages")
	}

	age := 0
	if user != nil {
		age = user.Age()
	}

	result, err := s.engine.Recommend(ctx, &recommend.Request{
		Domain:   contentDomain,
		Seeds:    req.Seeds,
		Genre:    req.Genre,
		MinPages: req.MinPages,
		MaxPages: req.MaxPages,
		Notes:    req.Notes,
		Age:      age,
	})
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	resp := &RecommendResponse{Result: result}
	if req.WithPlaylist && contentDomain == domain.DomainMusic {
		resp.Playlist = playlist.Synthesize(trackList(result.Items), req.Genre)
	}

	if s.logger != nil {
		s.logger.Info("Recommendation served",
			"domain", contentDomain,
			"seeds", len(req.Seeds),
			"items", len(result.Items),
		)
	}
	return resp, nil
}

// PlaylistRequest builds a playlist from an explicit track list.
type PlaylistRequest struct {
	Tracks []string `json:"tracks" validate:"required,min=1,max=50,dive,required"`
	Genre  string   `json:"genre"`
}

// BuildPlaylist synthesizes a playlist descriptor for the given tracks.
func (s *RecommendService) BuildPlaylist(req PlaylistRequest) (*playlist.Descriptor, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	return playlist.Synthesize(req.Tracks, req.Genre), nil
}

// trackList renders music candidates as "Artist - Title" track names.
func trackList(items []domain.Candidate) []string {
	tracks := make([]string, 0, len(items))
	for _, item := range items {
		if item.Creator != "" {
			tracks = append(tracks, item.Creator+" - "+item.Title)
			continue
		}
		tracks = append(tracks, item.Title)
	}
	return tracks
}
