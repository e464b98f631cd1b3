// Package observability provides structured logging for the quiz agent:
// slog handlers, OpenTelemetry trace correlation, and redaction of
// sensitive fields.
package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// AgentLogger is a structured logger with automatic trace correlation. It
// wraps slog.Logger and stamps every entry with the agent name and the
// session it is working on.
type AgentLogger struct {
	logger          *slog.Logger
	agentName       string
	sessionID       string
	redactSensitive bool
}

// NewAgentLogger creates a logger that correlates entries with
// OpenTelemetry traces and carries the agent identity on every record.
func NewAgentLogger(handler slog.Handler, agentName string) *AgentLogger {
	return &AgentLogger{
		logger:          slog.New(handler),
		agentName:       agentName,
		redactSensitive: true,
	}
}

// WithSession returns a copy of the logger bound to a session id.
func (l *AgentLogger) WithSession(sessionID string) *AgentLogger {
	clone := *l
	clone.sessionID = sessionID
	return &clone
}

// Logger returns the underlying slog.Logger with the agent identity
// attached, for components that take a plain *slog.Logger.
func (l *AgentLogger) Logger() *slog.Logger {
	return l.withIdentity(l.logger)
}

// Debug logs at debug level. Debug entries skip redaction so local
// troubleshooting can see full values.
func (l *AgentLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.withContext(ctx).Debug(msg, args...)
}

// Info logs at info level with sensitive fields redacted.
func (l *AgentLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.withContext(ctx).Info(msg, args...)
}

// Warn logs at warn level with sensitive fields redacted.
func (l *AgentLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.withContext(ctx).Warn(msg, args...)
}

// Error logs at error level with sensitive fields redacted.
func (l *AgentLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.withContext(ctx).Error(msg, args...)
}

func (l *AgentLogger) withIdentity(logger *slog.Logger) *slog.Logger {
	logger = logger.With(slog.String("agent_name", l.agentName))
	if l.sessionID != "" {
		logger = logger.With(slog.String("session_id", l.sessionID))
	}
	return logger
}

// withContext attaches identity fields plus trace and span ids when the
// context carries a valid OpenTelemetry span.
func (l *AgentLogger) withContext(ctx context.Context) *slog.Logger {
	logger := l.withIdentity(l.logger)

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		spanCtx := span.SpanContext()
		logger = logger.With(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return logger
}

// NewJSONHandler creates a JSON log handler for production output.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// NewTextHandler creates a human-readable handler for development.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// NewHandler builds a handler from logging config values.
func NewHandler(w io.Writer, format, level string) slog.Handler {
	lvl := ParseLevel(level)
	if format == "text" {
		return NewTextHandler(w, lvl)
	}
	return NewJSONHandler(w, lvl)
}

// ParseLevel maps a config level string to a slog level, defaulting to
// info for unrecognized values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// sensitiveFields are the argument keys whose values never reach logs at
// info level and above.
var sensitiveFields = map[string]bool{
	"prompt":     true,
	"prompts":    true,
	"apikey":     true,
	"secret":     true,
	"secretkey":  true,
	"password":   true,
	"token":      true,
	"credential": true,
}

// redactSensitiveData replaces sensitive values with "[REDACTED]". Key
// matching ignores case and underscores so api_key and APIKey both match.
func redactSensitiveData(args []any) []any {
	if len(args)%2 != 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 0; i < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			normalized := strings.ToLower(strings.ReplaceAll(key, "_", ""))
			if sensitiveFields[normalized] {
				redacted[i+1] = "[REDACTED]"
			}
		}
	}
	return redacted
}
