// Package app provides the application context and dependency management
// for the depsync CLI. It centralizes configuration, logging and the
// construction of syncers for the commands.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/depsync"
	"github.com/agentstation/depsync/pkg/errors"
)

// App represents the depsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Extra syncer options applied before command options (tests use WithFs).
	syncerOpts []depsync.Option
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the report format requested by flag or config.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Syncer creates a syncer from the configuration. A new syncer is created
// per call since commands apply their own options.
func (a *App) Syncer(opts ...depsync.Option) (depsync.Syncer, error) {
	all := append(a.buildSyncerOptions(), a.syncerOpts...)
	all = append(all, opts...)

	s, err := depsync.New(all...)
	if err != nil {
		return nil, errors.WrapResource("create", "syncer", "", err)
	}
	return s, nil
}

// Shutdown performs graceful shutdown of the application. A pass holds no
// background resources, so there is nothing to stop beyond flushing logs.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// buildSyncerOptions constructs syncer options from the app configuration.
func (a *App) buildSyncerOptions() []depsync.Option {
	opts := []depsync.Option{
		depsync.WithLogger(a.logger),
		depsync.WithTOMLValidation(a.config.ValidateTOML),
	}

	if a.config.Dir != "" {
		opts = append(opts, depsync.WithDir(a.config.Dir))
	}
	if a.config.BuildFile != "" {
		opts = append(opts, depsync.WithBuildFile(a.config.BuildFile))
	}
	if a.config.CatalogFile != "" {
		opts = append(opts, depsync.WithCatalogFile(a.config.CatalogFile))
	}
	if a.config.Marker != "" {
		opts = append(opts, depsync.WithMarker(a.config.Marker))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSyncerOptions adds options to every syncer the app creates.
func WithSyncerOptions(opts ...depsync.Option) Option {
	return func(a *App) error {
		a.syncerOpts = append(a.syncerOpts, opts...)
		return nil
	}
}
