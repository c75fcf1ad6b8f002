package depsync

import (
	"fmt"
	"strings"

	"github.com/agentstation/depsync/pkg/events"
	"github.com/agentstation/depsync/pkg/reconcile"
)

// Result represents the outcome of one pass.
type Result struct {
	// Events are the reported changes in the order they were decided.
	Events []events.Event `json:"events" yaml:"events"`

	// BuildFile and CatalogFile are the paths the pass worked on.
	BuildFile   string `json:"build_file" yaml:"build_file"`
	CatalogFile string `json:"catalog_file" yaml:"catalog_file"`

	// BuildFileChanged and CatalogChanged report whether the pass produced
	// different text for each file.
	BuildFileChanged bool `json:"build_file_changed" yaml:"build_file_changed"`
	CatalogChanged   bool `json:"catalog_changed" yaml:"catalog_changed"`

	// Written lists the files actually written, build file first.
	Written []string `json:"written,omitempty" yaml:"written,omitempty"`

	// DryRun indicates nothing was written.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Stats summarize version reconciliation.
	Stats reconcile.Statistics `json:"stats" yaml:"stats"`

	buildText   string
	catalogText string
}

// HasChanges reports whether either file differs from its input.
func (r *Result) HasChanges() bool {
	return r.BuildFileChanged || r.CatalogChanged
}

// Count returns the number of events of kind.
func (r *Result) Count(kind events.Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// BuildText returns the build file text the pass produced.
func (r *Result) BuildText() string { return r.buildText }

// CatalogText returns the catalog text the pass produced.
func (r *Result) CatalogText() string { return r.catalogText }

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return "Dependencies are in sync"
	}

	var parts []string
	if r.DryRun {
		parts = append(parts, "(Dry run)")
	}
	counts := []struct {
		kind  events.Kind
		label string
	}{
		{events.AddedToCatalog, "added to catalog"},
		{events.AddedToBuildFile, "added to build file"},
		{events.UpdatedCatalogVersion, "catalog versions updated"},
		{events.UpdatedBuildFileVersion, "build file versions updated"},
	}
	for _, c := range counts {
		if n := r.Count(c.kind); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, c.label))
		}
	}
	if len(r.Events) == 0 {
		parts = append(parts, "catalog reformatted")
	}
	return strings.Join(parts, ", ")
}
