// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key carrying the per-request correlation ID.
const CorrelationID LogContextKey = "correlation_id"

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// UpstreamLogger provides structured logging for external service adapters.
type UpstreamLogger struct {
	upstream string
	logger   *Logger
}

// NewUpstreamLogger creates a logger scoped to one upstream service.
func NewUpstreamLogger(upstream string) *UpstreamLogger {
	return &UpstreamLogger{upstream: upstream, logger: GlobalLogger}
}

// LogCall logs an outbound call to the upstream.
func (l *UpstreamLogger) LogCall(ctx context.Context, operation string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("upstream", l.upstream),
		slog.String("operation", operation),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "upstream call", attrs...)
}

// LogError logs a failed call to the upstream.
func (l *UpstreamLogger) LogError(ctx context.Context, operation string, err error) {
	l.logger.ErrorContext(ctx, "upstream error",
		slog.String("upstream", l.upstream),
		slog.String("operation", operation),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.String("error", err.Error()),
	)
}
