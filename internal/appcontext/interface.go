// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface rather than the
// concrete App so they can be tested with a mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/depsync"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/depsync/app implements this interface.
type Interface interface {
	// Syncer creates a syncer from the loaded configuration. Options given
	// here are applied after the configured ones and take precedence.
	Syncer(opts ...depsync.Option) (depsync.Syncer, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured report format (table, json, yaml, markdown).
	// An empty string means auto-detect.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
