package depsync

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/depsync/pkg/constants"
	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/events"
	"github.com/agentstation/depsync/pkg/logging"
)

// Option is a function that configures a Syncer.
type Option func(*config) error

// config holds the resolved syncer settings.
type config struct {
	dir          string
	buildFile    string
	catalogFile  string
	marker       string
	fs           afero.Fs
	sink         events.Sink
	logger       *zerolog.Logger
	dryRun       bool
	validateTOML bool
}

func defaultConfig() *config {
	logger := logging.Default()
	return &config{
		buildFile:    constants.DefaultBuildFile,
		catalogFile:  constants.DefaultCatalogFile,
		marker:       constants.DefaultMarker,
		fs:           afero.NewOsFs(),
		logger:       logger,
		validateTOML: true,
	}
}

// validate checks the settings and fills in the defaults that depend on
// other settings.
func (c *config) validate() error {
	if c.buildFile == "" {
		return &errors.ValidationError{Field: "build_file", Value: c.buildFile, Message: "build file path is required"}
	}
	if c.catalogFile == "" {
		return &errors.ValidationError{Field: "catalog_file", Value: c.catalogFile, Message: "catalog file path is required"}
	}
	if c.marker == "" {
		return &errors.ValidationError{Field: "marker", Value: c.marker, Message: "marker configuration name is required"}
	}
	if c.fs == nil {
		return &errors.ValidationError{Field: "fs", Message: "filesystem is required"}
	}
	if c.sink == nil {
		c.sink = events.NewLogSink(c.logger)
	}
	return nil
}

func (c *config) path(p string) string {
	if c.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// WithDir sets the project directory relative paths are resolved against.
func WithDir(dir string) Option {
	return func(c *config) error {
		c.dir = dir
		return nil
	}
}

// WithBuildFile sets the build script path.
func WithBuildFile(path string) Option {
	return func(c *config) error {
		c.buildFile = path
		return nil
	}
}

// WithCatalogFile sets the version catalog path.
func WithCatalogFile(path string) Option {
	return func(c *config) error {
		c.catalogFile = path
		return nil
	}
}

// WithMarker sets the configuration name that marks managed declarations.
func WithMarker(marker string) Option {
	return func(c *config) error {
		c.marker = marker
		return nil
	}
}

// WithFs sets the filesystem both files are read from and written to.
func WithFs(fs afero.Fs) Option {
	return func(c *config) error {
		if fs == nil {
			return &errors.ValidationError{Field: "fs", Message: "filesystem cannot be nil"}
		}
		c.fs = fs
		return nil
	}
}

// WithSink sets the sink events are reported to. The default logs each event.
func WithSink(sink events.Sink) Option {
	return func(c *config) error {
		c.sink = sink
		return nil
	}
}

// WithLogger sets the logger used for progress and for the default sink.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithDryRun makes Sync behave like Check.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithTOMLValidation controls whether a rewritten catalog must decode as TOML
// before it is written.
func WithTOMLValidation(enabled bool) Option {
	return func(c *config) error {
		c.validateTOML = enabled
		return nil
	}
}
