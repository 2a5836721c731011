// Package logger sets up structured JSON logging and carries a run ID
// through context.Context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const runIDKey ctxKey = "run_id"

// Init creates a JSON logger on stderr for the given service and installs it
// as the slog default. Stdout is left for command output.
func Init(service string, level slog.Level) *slog.Logger {
	return InitWriter(os.Stderr, service, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, service string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", service),
	)

	slog.SetDefault(logger)

	return logger
}

// NewRunID returns a fresh identifier for one suite run.
func NewRunID() string { return uuid.NewString() }

// WithRunID stores a run ID in the context for downstream log lines.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunID extracts the run ID from context. Returns "" if not set.
func RunID(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}

// FromContext returns l annotated with the context's run ID, if any.
func FromContext(ctx context.Context, l *slog.Logger) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	if id := RunID(ctx); id != "" {
		return l.With(slog.String("run_id", id))
	}
	return l
}
