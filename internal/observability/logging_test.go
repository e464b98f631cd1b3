package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(t *testing.T) (*AgentLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := NewAgentLogger(NewJSONHandler(&buf, slog.LevelDebug), "quiz-agent")
	return logger, &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerCarriesIdentity(t *testing.T) {
	logger, buf := captureLogger(t)
	logger.WithSession("s-42").Info(context.Background(), "turn started", "operation", "search")

	entry := lastEntry(t, buf)
	assert.Equal(t, "quiz-agent", entry["agent_name"])
	assert.Equal(t, "s-42", entry["session_id"])
	assert.Equal(t, "search", entry["operation"])
	assert.Equal(t, "turn started", entry["msg"])
}

func TestWithSessionDoesNotMutateParent(t *testing.T) {
	logger, buf := captureLogger(t)
	_ = logger.WithSession("s-42")

	logger.Info(context.Background(), "no session")
	entry := lastEntry(t, buf)
	_, hasSession := entry["session_id"]
	assert.False(t, hasSession)
}

func TestSensitiveFieldsRedacted(t *testing.T) {
	logger, buf := captureLogger(t)
	logger.Info(context.Background(), "calling provider",
		"api_key", "sk-secret",
		"model", "gpt-4o-mini",
	)

	entry := lastEntry(t, buf)
	assert.Equal(t, "[REDACTED]", entry["api_key"])
	assert.Equal(t, "gpt-4o-mini", entry["model"])
}

func TestDebugSkipsRedaction(t *testing.T) {
	logger, buf := captureLogger(t)
	logger.Debug(context.Background(), "full prompt", "prompt", "Generate a quiz about Go")

	entry := lastEntry(t, buf)
	assert.Equal(t, "Generate a quiz about Go", entry["prompt"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("mystery"))
}

func TestRedactHandlesOddArgs(t *testing.T) {
	args := []any{"api_key"}
	assert.Equal(t, args, redactSensitiveData(args))
}

func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer

	jsonHandler := NewHandler(&buf, "json", "info")
	assert.IsType(t, &slog.JSONHandler{}, jsonHandler)

	textHandler := NewHandler(&buf, "text", "debug")
	assert.IsType(t, &slog.TextHandler{}, textHandler)
}
