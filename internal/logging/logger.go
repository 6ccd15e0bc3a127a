// Package logging provides structured logging configuration using log/slog.
//
// Loggers obtained through FromContext carry the chi request ID and, while a
// comparison runs, its comparison ID, so every line of one comparison can be
// correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const comparisonIDKey ctxKey = iota

// Setup configures the global slog logger based on level and format.
// The server logs to stdout; the diff command logs to stderr so its
// report owns stdout.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(w io.Writer, level, format string) {
	slog.SetDefault(New(w, level, format))
}

// New builds a logger writing to w with the given level and format.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
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

// WithComparison returns a context whose loggers include comparison_id.
func WithComparison(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, comparisonIDKey, id)
}

// ComparisonID returns the comparison ID stored by WithComparison.
func ComparisonID(ctx context.Context) string {
	id, _ := ctx.Value(comparisonIDKey).(string)
	return id
}

// FromContext returns the default logger enriched with request_id and
// comparison_id when ctx carries them.
//
// Usage:
//
//	func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.FromContext(r.Context())
//	    logger.Info("comparison requested", "file1", file1)
//	}
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if id := ComparisonID(ctx); id != "" {
		logger = logger.With("comparison_id", id)
	}

	return logger
}
