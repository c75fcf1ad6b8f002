package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger returns ctx carrying logger. A nil logger stores Default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx, or Default.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithFile tags the context logger with the file being read or written.
func WithFile(ctx context.Context, path string) context.Context {
	return withStr(ctx, "file", path)
}

// WithCoordinate tags the context logger with a group:artifact:version.
func WithCoordinate(ctx context.Context, coordinate string) context.Context {
	return withStr(ctx, "coordinate", coordinate)
}

// WithOperation tags the context logger with the running command, such as
// sync or check.
func WithOperation(ctx context.Context, operation string) context.Context {
	return withStr(ctx, "operation", operation)
}

func withStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
