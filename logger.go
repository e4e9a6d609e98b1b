package hfget

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
)

// NewLogger returns a logr.Logger writing text to stderr.
func NewLogger() logr.Logger {
	return logr.FromSlogHandler(
		slog.NewTextHandler(os.Stderr, nil),
	)
}

// WithLogger embeds the logr.Logger in the context.Context.
func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return logr.NewContext(ctx, log)
}

// LoggerFrom retrieves the logr.Logger that WithLogger
// embedded in the context.Context, if any.
func LoggerFrom(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}
