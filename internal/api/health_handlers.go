package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	dbHealth := s.checkDatabase()
	components["database"] = dbHealth
	if dbHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	providerHealth := s.checkProviders()
	components["providers"] = providerHealth
	if providerHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	mailHealth := s.checkMail()
	components["mail"] = mailHealth
	if mailHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkDatabase verifies BadgerDB is accessible.
func (s *Server) checkDatabase() ComponentHealth {
	// Handle nil store (e.g., in tests)
	if s.store == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "database not configured",
		}
	}

	start := time.Now()
	err := s.store.Ping()
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "database read failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkProviders reports whether any external content source is configured.
// The server works without them, serving curated results only.
func (s *Server) checkProviders() ComponentHealth {
	if s.services == nil || s.services.Status == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "status service not configured",
		}
	}

	p := s.services.Status.GetStatus().Providers
	configured := 0
	for _, on := range []bool{p.GoogleBooks, p.TMDB, p.LastFM} {
		if on {
			configured++
		}
	}

	if configured == 0 {
		return ComponentHealth{
			Status:  "degraded",
			Message: "no external sources configured, curated results only",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Message: formatSourceCount(configured),
	}
}

// checkMail reports whether outbound mail is configured. Without it,
// verification and reset codes only appear in the server log.
func (s *Server) checkMail() ComponentHealth {
	if s.services == nil || s.services.Status == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "status service not configured",
		}
	}

	if !s.services.Status.GetStatus().Mail {
		return ComponentHealth{
			Status:  "degraded",
			Message: "mail not configured, codes logged only",
		}
	}

	return ComponentHealth{Status: "healthy"}
}

func formatSourceCount(count int) string {
	if count == 1 {
		return "1 source configured"
	}
	return formatInt(count) + " sources configured"
}

func formatInt(n int) string {
	if n == 0 {
		return "0"
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
