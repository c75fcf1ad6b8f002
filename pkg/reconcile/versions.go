package reconcile

import (
	"cmp"
	"slices"

	"github.com/agentstation/depsync/pkg/buildfile"
	"github.com/agentstation/depsync/pkg/catalogs"
	"github.com/agentstation/depsync/pkg/coordinates"
	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/events"
	"github.com/agentstation/depsync/pkg/rewrite"
	"github.com/agentstation/depsync/pkg/versions"
)

// Plan is the outcome of version reconciliation. Nothing has been applied
// yet: edits are expressed against the texts the plan was computed from.
type Plan struct {
	// CatalogEdits rewrite version definitions of the catalog text.
	CatalogEdits []rewrite.Edit
	// BuildEdits rewrite version tokens of the build file text.
	BuildEdits []rewrite.Edit
	// Entries is the full entry list with simple entries at their winning
	// versions, in the order given.
	Entries []catalogs.Entry
	// Events are the version updates, ordered by group:artifact.
	Events []events.Event
	// Stats summarize the comparison.
	Stats Statistics
}

// Statistics count what reconciliation looked at.
type Statistics struct {
	Compared       int `json:"compared" yaml:"compared"`
	CatalogUpdates int `json:"catalog_updates" yaml:"catalog_updates"`
	BuildUpdates   int `json:"build_updates" yaml:"build_updates"`
}

// Versions reconciles every coordinate present on both sides. The higher
// version wins, ties keep the catalog's text, and the losing side is
// rewritten to the winner's original string.
//
// Complex entries sharing a version definition are reconciled as one group:
// the winner is taken over the definition and every sibling's build file
// version, the definition is edited at most once, and each sibling
// declaration that differs is rewritten by its own span.
func Versions(catalog *catalogs.Catalog, entries []catalogs.Entry, build *buildfile.File) (*Plan, error) {
	catalogIndex, err := catalogs.Index(entries)
	if err != nil {
		return nil, err
	}
	buildIndex, err := build.Index()
	if err != nil {
		return nil, err
	}

	shared := make([]coordinates.Key, 0, len(catalogIndex))
	for key := range catalogIndex {
		if _, ok := buildIndex[key]; ok {
			shared = append(shared, key)
		}
	}
	slices.SortFunc(shared, func(a, b coordinates.Key) int {
		return cmp.Compare(a.String(), b.String())
	})

	r := &reconciler{
		catalog:  catalog,
		build:    build,
		index:    buildIndex,
		plan:     &Plan{},
		updated:  make(map[*catalogs.SimpleEntry]*catalogs.SimpleEntry),
		resolved: make(map[*catalogs.VersionDefinition]bool),
	}

	for _, key := range shared {
		switch e := catalogIndex[key].(type) {
		case *catalogs.SimpleEntry:
			err = r.simple(e)
		case *catalogs.ComplexEntry:
			err = r.group(e)
		default:
			panic("reconcile: unknown catalog entry type")
		}
		if err != nil {
			return nil, err
		}
	}

	r.plan.Entries = make([]catalogs.Entry, len(entries))
	for i, e := range entries {
		if s, ok := e.(*catalogs.SimpleEntry); ok {
			if u, ok := r.updated[s]; ok {
				r.plan.Entries[i] = u
				continue
			}
		}
		r.plan.Entries[i] = e
	}
	return r.plan, nil
}

type reconciler struct {
	catalog  *catalogs.Catalog
	build    *buildfile.File
	index    map[coordinates.Key]coordinates.Coordinate
	plan     *Plan
	updated  map[*catalogs.SimpleEntry]*catalogs.SimpleEntry
	resolved map[*catalogs.VersionDefinition]bool
}

func (r *reconciler) simple(e *catalogs.SimpleEntry) error {
	r.plan.Stats.Compared++
	current := e.Dependency
	winner, err := versions.Max(current.Version, r.index[current.Key()].Version)
	if err != nil {
		return annotate(err, current.Key())
	}

	if winner != current.Version {
		r.updated[e] = e.WithVersion(winner)
		r.plan.Stats.CatalogUpdates++
		r.report(events.UpdatedCatalogVersion, current, current.WithVersion(winner))
	}
	r.alignBuild(current.Key(), winner)
	return nil
}

func (r *reconciler) group(e *catalogs.ComplexEntry) error {
	def := e.Definition
	if r.resolved[def] {
		return nil
	}
	r.resolved[def] = true

	siblings := r.catalog.Siblings(e.VersionRef)
	candidates := []string{def.Version}
	for _, s := range siblings {
		if b, ok := r.index[s.Module]; ok {
			r.plan.Stats.Compared++
			candidates = append(candidates, b.Version)
		}
	}
	winner, err := versions.Max(candidates...)
	if err != nil {
		return annotate(err, e.Module)
	}

	if winner != def.Version {
		r.plan.CatalogEdits = append(r.plan.CatalogEdits, r.catalog.DefinitionEdit(def, winner))
		seen := make(map[coordinates.Key]bool, len(siblings))
		for _, s := range sortedByModule(siblings) {
			if seen[s.Module] {
				continue
			}
			seen[s.Module] = true
			r.plan.Stats.CatalogUpdates++
			old := s.Coordinate()
			r.report(events.UpdatedCatalogVersion, old, old.WithVersion(winner))
		}
	}
	for _, s := range sortedByModule(siblings) {
		if _, ok := r.index[s.Module]; ok {
			r.alignBuild(s.Module, winner)
		}
	}
	return nil
}

// alignBuild rewrites every declaration of key not already at winner.
func (r *reconciler) alignBuild(key coordinates.Key, winner string) {
	var first *coordinates.Coordinate
	for _, d := range r.build.DeclarationsOf(key) {
		if d.Coordinate.Version == winner {
			continue
		}
		if first == nil {
			c := d.Coordinate
			first = &c
		}
		r.plan.BuildEdits = append(r.plan.BuildEdits, r.build.VersionEdit(d, winner))
	}
	if first == nil {
		return
	}

	old := *first
	if indexed := r.index[key]; indexed.Version != winner {
		old = indexed
	}
	r.plan.Stats.BuildUpdates++
	r.report(events.UpdatedBuildFileVersion, old, old.WithVersion(winner))
}

func (r *reconciler) report(kind events.Kind, old, updated coordinates.Coordinate) {
	r.plan.Events = append(r.plan.Events, events.Event{Kind: kind, Old: old.String(), New: updated.String()})
}

func sortedByModule(entries []*catalogs.ComplexEntry) []*catalogs.ComplexEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b *catalogs.ComplexEntry) int {
		return cmp.Compare(a.Module.String(), b.Module.String())
	})
	return out
}

func annotate(err error, key coordinates.Key) error {
	var vpe *errors.VersionParseError
	if errors.As(err, &vpe) && vpe.Coordinate == "" {
		vpe.Coordinate = key.String()
	}
	return err
}
