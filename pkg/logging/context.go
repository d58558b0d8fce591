package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// WithLogger stores logger in ctx. A nil logger stores the default one.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return logger.WithContext(ctx)
}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	return zerolog.Ctx(ctx)
}

// Ctx is shorthand for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithFields returns a ctx whose logger carries fields.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	return derive(ctx, func(c zerolog.Context) zerolog.Context { return c.Fields(fields) })
}

// WithSource tags lines with the tracker being synced.
func WithSource(ctx context.Context, source string) context.Context {
	return derive(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("source", source) })
}

// WithIssue tags lines with a tracker issue.
func WithIssue(ctx context.Context, source, sourceKey string) context.Context {
	return derive(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Str("source", source).Str("source_key", sourceKey)
	})
}

// WithOperation tags lines with the client operation (sync, fetch, ...).
func WithOperation(ctx context.Context, operation string) context.Context {
	return derive(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("operation", operation) })
}

// WithStore tags lines with the local store directory.
func WithStore(ctx context.Context, dir string) context.Context {
	return derive(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("store", dir) })
}

func derive(ctx context.Context, fn func(zerolog.Context) zerolog.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := fn(FromContext(ctx).With()).Logger()
	return logger.WithContext(ctx)
}
