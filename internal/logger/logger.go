package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// New creates a JSON logger on stdout at the given level. Lambda ships
// stdout to CloudWatch, so no console formatting.
func New(level zerolog.Level) zerolog.Logger {
	return NewWithWriter(os.Stdout).Level(level)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext retrieves the logger from the context, or a disabled one
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

// WithFields adds structured fields to a logger
func WithFields(logger zerolog.Logger, fields map[string]interface{}) zerolog.Logger {
	return logger.With().Fields(fields).Logger()
}
