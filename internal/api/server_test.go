package api

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/listoria/listoria-server/internal/auth"
	"github.com/listoria/listoria-server/internal/config"
	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/logger"
	"github.com/listoria/listoria-server/internal/recommend"
	"github.com/listoria/listoria-server/internal/service"
	"github.com/listoria/listoria-server/internal/store"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// captureSender records emailed codes for completing auth flows in tests.
type captureSender struct {
	mu         sync.Mutex
	verifyCode string
	resetCode  string
}

func (c *captureSender) SendVerificationCode(_ context.Context, _, _, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifyCode = code
	return nil
}

func (c *captureSender) SendResetCode(_ context.Context, _, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetCode = code
	return nil
}

func (c *captureSender) lastVerifyCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verifyCode
}

func (c *captureSender) lastResetCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetCode
}

type testCatalog map[domain.ContentDomain][]domain.Candidate

func (c testCatalog) Items(d domain.ContentDomain) []domain.Candidate { return c[d] }

type testServer struct {
	*Server
	api     humatest.TestAPI
	sender  *captureSender
	cleanup func()
}

// setupTestServer creates a fully wired API server with temporary storage.
func setupTestServer(t *testing.T, catalog testCatalog) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "listoria-api-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(dbPath, slogger)
	require.NoError(t, err)

	cfg := &config.Config{
		App:    config.AppConfig{Environment: "development"},
		Server: config.ServerConfig{Name: "Test Server"},
		Auth: config.AuthConfig{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
		},
		Providers: config.ProvidersConfig{GoogleBooksAPIKey: "test-key"},
	}

	testKeyHex := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	tokenService, err := auth.NewTokenService(testKeyHex, cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
	require.NoError(t, err)

	sender := &captureSender{}
	sessionService := service.NewSessionService(st, tokenService, slogger)
	authService := service.NewAuthService(st, tokenService, sessionService, sender, slogger)

	engineLog := logger.New(logger.Config{Writer: io.Discard, Format: "json"})
	engine := recommend.NewEngine(catalog, nil, engineLog,
		recommend.WithJitter(recommend.NoJitter{}),
		recommend.WithSearchDelay(0),
	)
	recommendService := service.NewRecommendService(engine, slogger)
	statusService := service.NewStatusService(cfg, slogger)

	services := &Services{
		Auth:      authService,
		Session:   sessionService,
		Recommend: recommendService,
		Status:    statusService,
	}

	router := chi.NewRouter()
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("Listoria API Test", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             api,
		logger:          slogger,
		authRateLimiter: NewRateLimiter(100, time.Minute, 50),
	}

	s.registerHealthRoutes()
	s.registerStatusRoutes()
	s.registerAuthRoutes()
	s.registerRecommendRoutes()

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, api),
		sender: sender,
		cleanup: func() {
			_ = st.Close()
			_ = os.RemoveAll(tmpDir)
		},
	}
}

// registerTestUser runs the register plus verify flow and returns tokens.
func (ts *testServer) registerTestUser(t *testing.T, email, password string) AuthResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      email,
		"password":   password,
		"name":       "Test Reader",
		"birth_date": "1990-06-15",
	})
	require.Equal(t, 200, resp.Code, "Register failed: %s", resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/verify", map[string]any{
		"email": email,
		"code":  ts.sender.lastVerifyCode(),
	})
	require.Equal(t, 200, resp.Code, "Verify failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}
