package depsync

import (
	"context"

	"github.com/agentstation/depsync/pkg/buildfile"
	"github.com/agentstation/depsync/pkg/catalogs"
	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/events"
	"github.com/agentstation/depsync/pkg/logging"
	"github.com/agentstation/depsync/pkg/reconcile"
	"github.com/agentstation/depsync/pkg/rewrite"
)

// run executes one pass. Nothing is written and no event is reported unless
// every step succeeds.
func (s *syncer) run(ctx context.Context, dryRun bool) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := s.config
	operation := "sync"
	if dryRun {
		operation = "check"
	}
	ctx = logging.WithOperation(logging.WithLogger(ctx, cfg.logger), operation)
	logger := logging.FromContext(ctx)

	buildPath, catalogPath := cfg.path(cfg.buildFile), cfg.path(cfg.catalogFile)

	// Step 1: read both files whole
	buildIn, err := readFile(ctx, cfg.fs, buildPath)
	if err != nil {
		return nil, err
	}
	catalogIn, err := readFile(ctx, cfg.fs, catalogPath)
	if err != nil {
		return nil, err
	}

	// Step 2: extract both models from a catalog that is TOML to begin with
	if cfg.validateTOML {
		if err := validateTOML(catalogPath, catalogIn.text); err != nil {
			return nil, err
		}
	}
	catalog, err := catalogs.Parse(catalogIn.text)
	if err != nil {
		return nil, err
	}
	build := buildfile.Parse(buildPath, buildIn.text, cfg.marker)
	if err := build.RequireManaged(); err != nil {
		return nil, err
	}
	logger.Debug().
		Int("entries", len(catalog.Entries)).
		Int("definitions", len(catalog.Definitions)).
		Int("declarations", len(build.Declarations)).
		Msg("Extracted dependency models")

	catalogIndex, err := catalogs.Index(catalog.Entries)
	if err != nil {
		return nil, err
	}
	buildIndex, err := build.Index()
	if err != nil {
		return nil, err
	}
	missing := reconcile.FindMissing(catalogIndex, buildIndex)

	var evs []events.Event

	// Step 3: insert declarations the build file is missing, then re-extract
	buildText := build.Text
	if len(missing.FromBuildFile) > 0 {
		edit, err := build.InsertEdit(missing.FromBuildFile)
		if err != nil {
			return nil, err
		}
		if buildText, err = rewrite.Apply(buildPath, buildText, []rewrite.Edit{edit}); err != nil {
			return nil, err
		}
		for _, c := range missing.FromBuildFile {
			evs = append(evs, events.Event{Kind: events.AddedToBuildFile, New: c.String()})
		}
		build = buildfile.Parse(buildPath, buildText, cfg.marker)
	}

	// Step 4: synthesize catalog entries the catalog is missing
	entries := catalog.Entries
	if len(missing.FromCatalog) > 0 {
		added := catalogs.Synthesize(catalog.Taken(), missing.FromCatalog)
		entries = make([]catalogs.Entry, 0, len(catalog.Entries)+len(added))
		entries = append(entries, catalog.Entries...)
		for _, e := range added {
			entries = append(entries, e)
			evs = append(evs, events.Event{Kind: events.AddedToCatalog, New: e.Coordinate().String()})
		}
	}

	// Step 5: reconcile versions
	plan, err := reconcile.Versions(catalog, entries, build)
	if err != nil {
		return nil, err
	}
	evs = append(evs, plan.Events...)
	for _, e := range evs {
		logging.FromContext(logging.WithCoordinate(ctx, e.New)).Debug().
			Str("kind", string(e.Kind)).
			Str("old", e.Old).
			Msg("Planned change")
	}

	// Step 6: regenerate the libraries block once, then apply all edits
	catalogEdits := plan.CatalogEdits
	if edit, ok := catalog.LibrariesEdit(plan.Entries); ok {
		catalogEdits = append(catalogEdits, edit)
	}
	catalogText, err := rewrite.Apply(catalogPath, catalog.Text, catalogEdits)
	if err != nil {
		return nil, err
	}
	if buildText, err = rewrite.Apply(buildPath, buildText, plan.BuildEdits); err != nil {
		return nil, err
	}

	result := &Result{
		Events:           evs,
		BuildFile:        buildPath,
		CatalogFile:      catalogPath,
		BuildFileChanged: buildText != buildIn.text,
		CatalogChanged:   catalogText != catalogIn.text,
		DryRun:           dryRun,
		Stats:            plan.Stats,
		buildText:        buildText,
		catalogText:      catalogText,
	}

	// Step 7: the rewritten catalog must still be TOML
	if cfg.validateTOML && result.CatalogChanged {
		if err := validateTOML(catalogPath, catalogText); err != nil {
			return nil, err
		}
	}

	// Step 8: persist changed files, build file first
	if err := ctx.Err(); err != nil {
		return nil, errors.NewResourceError("sync", "dependencies", "", errors.ErrCanceled)
	}
	if !dryRun {
		var writes []pendingWrite
		if result.BuildFileChanged {
			writes = append(writes, pendingWrite{file: buildIn, text: buildText})
		}
		if result.CatalogChanged {
			writes = append(writes, pendingWrite{file: catalogIn, text: catalogText})
		}
		if result.Written, err = persist(ctx, cfg.fs, writes); err != nil {
			return nil, err
		}
	}

	s.report(result.Events)

	if result.HasChanges() {
		logger.Info().
			Bool("dry_run", dryRun).
			Int("events", len(result.Events)).
			Bool("build_file_changed", result.BuildFileChanged).
			Bool("catalog_changed", result.CatalogChanged).
			Msg("Synchronization completed")
	} else {
		logger.Debug().Msg("Dependencies already in sync")
	}
	return result, nil
}
