// Package depsync keeps a build script's managed dependency declarations and
// a TOML version catalog consistent with each other.
//
// A pass reads both files, inserts the coordinates each side is missing,
// raises every shared coordinate to its highest version on both sides,
// rewrites the catalog's [libraries] table in canonical order and writes both
// files back. A pass either succeeds completely or leaves both files
// untouched, and running it again on its own output changes nothing.
//
// Example usage:
//
//	syncer, err := depsync.New(
//	    depsync.WithBuildFile("app/build.gradle.kts"),
//	    depsync.WithCatalogFile("gradle/libs.versions.toml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	syncer.OnEvent(func(e events.Event) {
//	    fmt.Printf("%s: %s -> %s\n", e.Kind, e.Old, e.New)
//	})
//
//	result, err := syncer.Sync(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package depsync

import (
	"context"
	"fmt"

	"github.com/agentstation/depsync/pkg/events"
)

// Syncer runs synchronization passes over one build file and one catalog.
type Syncer interface {
	// Sync runs a pass and writes the files that changed.
	Sync(ctx context.Context) (*Result, error)

	// Check runs a pass without writing anything.
	Check(ctx context.Context) (*Result, error)

	// OnEvent registers a callback for every reported event.
	OnEvent(EventHook)

	// OnAdded registers a callback for additions to either file.
	OnAdded(EventHook)

	// OnUpdated registers a callback for version updates in either file.
	OnUpdated(EventHook)
}

// syncer is the implementation of Syncer.
type syncer struct {
	config *config
	hooks  *hooks
}

// New creates a Syncer with the given options.
func New(opts ...Option) (Syncer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &syncer{
		config: cfg,
		hooks:  newHooks(),
	}, nil
}

// Sync runs a pass and persists the result unless the syncer was created
// with WithDryRun.
func (s *syncer) Sync(ctx context.Context) (*Result, error) {
	return s.run(ctx, s.config.dryRun)
}

// Check runs a pass and reports what Sync would change.
func (s *syncer) Check(ctx context.Context) (*Result, error) {
	return s.run(ctx, true)
}

// Run is a convenience wrapper creating a Syncer and running one pass.
func Run(ctx context.Context, opts ...Option) (*Result, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Sync(ctx)
}

// report fans events out to the sink and hooks in order.
func (s *syncer) report(evs []events.Event) {
	for _, e := range evs {
		s.config.sink.Report(e)
		s.hooks.trigger(e)
	}
}
