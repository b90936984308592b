package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.Info("engine started", "domain", "book")

	out := buf.String()
	assert.Contains(t, out, `"msg":"engine started"`)
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"domain":"book"`)
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		environment string
		wantJSON    bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: slog.LevelInfo, Environment: tt.environment, Writer: &buf})
			log.Info("probe message")

			isJSON := bytes.Contains(buf.Bytes(), []byte(`"msg":"probe message"`))
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestNew_ExplicitFormatBeatsEnvironment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Environment: "development", Writer: &buf})
	log.Info("test")
	assert.Contains(t, buf.String(), `"msg":"test"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Info("recommendations ready", "total", 8, "curated", 1)

	out := buf.String()
	assert.Contains(t, out, "recommendations ready")
	assert.Contains(t, out, "total=8")
	assert.Contains(t, out, "curated=1")
	assert.Contains(t, out, "INF")
}

func TestPrettyHandler_LevelLabels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")

	out := buf.String()
	for _, label := range []string{"DBG", "INF", "WRN", "ERR"} {
		assert.Contains(t, out, label)
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("service", "listoria")}))
	log.Info("ready", "port", 8080)

	out := buf.String()
	assert.Contains(t, out, "service=listoria")
	assert.Contains(t, out, "port=8080")
}

func TestPrettyHandler_AddSource(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true}))

	log.Info("with source")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestPrettyHandler_NilOptions(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	require.NotNil(t, h)

	slog.New(h).Info("test")
	assert.Contains(t, buf.String(), "test")
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.WithError(errors.New("tmdb: status 500")).Warn("source search failed")

	out := buf.String()
	assert.Contains(t, out, "source search failed")
	assert.Contains(t, out, "tmdb: status 500")
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.WithField("user_id", "user-123").Info("user logged in")

	out := buf.String()
	assert.Contains(t, out, "user_id")
	assert.Contains(t, out, "user-123")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelWarn, Format: "json", Writer: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}
