package service

import (
	"log/slog"

	"github.com/listoria/listoria-server/internal/config"
)

// StatusService reports which external integrations the server was
// configured with. Clients use it to hide features that would only return
// curated fallbacks.
type StatusService struct {
	config *config.Config
	logger *slog.Logger
}

// NewStatusService creates a new status service.
func NewStatusService(config *config.Config, logger *slog.Logger) *StatusService {
	return &StatusService{
		config: config,
		logger: logger,
	}
}

// Status describes the server and its configured integrations.
type Status struct {
	ServerName  string         `json:"server_name"`
	Environment string         `json:"environment"`
	Providers   ProviderStatus `json:"providers"`
	Mail        bool           `json:"mail"`
}

// ProviderStatus flags which content sources have credentials. A false
// flag means that domain serves curated results only.
type ProviderStatus struct {
	GoogleBooks bool `json:"google_books"`
	TMDB        bool `json:"tmdb"`
	LastFM      bool `json:"lastfm"`
}

// GetStatus snapshots the configured integrations.
func (s *StatusService) GetStatus() *Status {
	return &Status{
		ServerName:  s.config.Server.Name,
		Environment: s.config.App.Environment,
		Providers: ProviderStatus{
			GoogleBooks: s.config.Providers.GoogleBooksAPIKey != "",
			TMDB:        s.config.Providers.TMDBAPIKey != "",
			LastFM:      s.config.Providers.LastFMAPIKey != "",
		},
		Mail: s.config.Mail.Host != "",
	}
}
