package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listoria/listoria-server/internal/service"
)

func (s *Server) registerStatusRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/status",
		Summary:     "Server status",
		Description: "Reports which external integrations this server was configured with",
		Tags:        []string{"Status"},
	}, s.handleGetStatus)
}

// StatusOutput wraps the status response for Huma.
type StatusOutput struct {
	Body service.Status
}

func (s *Server) handleGetStatus(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: *s.services.Status.GetStatus()}, nil
}
