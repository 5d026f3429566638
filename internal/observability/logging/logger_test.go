package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"web-summarizer/internal/handler/http/requestid"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})

	logger.Info("summary created", slog.Int("sentences", 3))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "summary created", entry["msg"])
	assert.Equal(t, float64(3), entry["sentences"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: "text", Output: &buf})

	logger.Info("hello", slog.String("k", "v"))

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_ReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.True(t, NewLogger().Enabled(context.Background(), slog.LevelDebug))

	t.Setenv("LOG_LEVEL", "error")
	assert.False(t, NewLogger().Enabled(context.Background(), slog.LevelWarn))
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Output: &buf})

	ctx := requestid.WithRequestID(context.Background(), "req-123")
	WithRequestID(ctx, base).Info("processing")

	assert.Equal(t, "req-123", decodeLine(t, &buf)["request_id"])
}

func TestWithRequestID_Missing(t *testing.T) {
	base := New(Options{Output: &bytes.Buffer{}})
	assert.Same(t, base, WithRequestID(context.Background(), base))
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Output: &buf})

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	WithTraceID(ctx, base).Info("traced")

	assert.Equal(t, span.SpanContext().TraceID().String(), decodeLine(t, &buf)["trace_id"])
	assert.Same(t, base, WithTraceID(context.Background(), base))
}

func TestContextLogger(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	logger := New(Options{Output: &buf})
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info("from context")
	assert.True(t, strings.Contains(buf.String(), "from context"))
}
