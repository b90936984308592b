package service

import (
	"testing"

	"github.com/listoria/listoria-server/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestStatusService_GetStatus(t *testing.T) {
	cfg := &config.Config{
		App:    config.AppConfig{Environment: "production"},
		Server: config.ServerConfig{Name: "Listoria"},
		Providers: config.ProvidersConfig{
			GoogleBooksAPIKey: "key",
			LastFMAPIKey:      "key",
		},
		Mail: config.MailConfig{Host: "smtp.example.com"},
	}

	status := NewStatusService(cfg, nil).GetStatus()

	assert.Equal(t, "Listoria", status.ServerName)
	assert.Equal(t, "production", status.Environment)
	assert.True(t, status.Providers.GoogleBooks)
	assert.False(t, status.Providers.TMDB)
	assert.True(t, status.Providers.LastFM)
	assert.True(t, status.Mail)
}

func TestStatusService_GetStatus_NothingConfigured(t *testing.T) {
	status := NewStatusService(&config.Config{}, nil).GetStatus()

	assert.False(t, status.Providers.GoogleBooks)
	assert.False(t, status.Providers.TMDB)
	assert.False(t, status.Providers.LastFM)
	assert.False(t, status.Mail)
}
