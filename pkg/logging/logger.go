// Package logging builds the zerolog loggers used by depsync and carries them
// through a context.Context. Loggers write console text when their output is a
// terminal and JSON lines otherwise.
//
//	ctx := logging.WithLogger(context.Background(), logging.Default())
//	ctx = logging.WithFile(ctx, "gradle/libs.versions.toml")
//	logging.FromContext(ctx).Debug().Int("entries", 12).Msg("Parsed catalog")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger honors LOG_LEVEL, LOG_FORMAT, DEBUG and NO_COLOR.
var defaultLogger = NewLoggerFromConfig(envConfig())

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, zerolog's global included.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
