// Package reconcile decides how the catalog and the build file must change to
// agree: which coordinates each side is missing and which version wins when
// both sides declare a coordinate.
package reconcile

import (
	"cmp"
	"slices"

	"github.com/agentstation/depsync/pkg/catalogs"
	"github.com/agentstation/depsync/pkg/coordinates"
)

// Missing lists coordinates declared on one side only.
type Missing struct {
	// FromBuildFile are catalog coordinates with no managed declaration.
	FromBuildFile []coordinates.Coordinate
	// FromCatalog are managed declarations with no catalog entry.
	FromCatalog []coordinates.Coordinate
}

// Empty reports whether neither side is missing anything.
func (m Missing) Empty() bool {
	return len(m.FromBuildFile) == 0 && len(m.FromCatalog) == 0
}

// FindMissing compares the deduplicated views of both sides. Both lists are
// ordered by group:artifact.
func FindMissing(catalog map[coordinates.Key]catalogs.Entry, build map[coordinates.Key]coordinates.Coordinate) Missing {
	var m Missing
	for key, e := range catalog {
		if _, ok := build[key]; !ok {
			m.FromBuildFile = append(m.FromBuildFile, e.Coordinate())
		}
	}
	for key, c := range build {
		if _, ok := catalog[key]; !ok {
			m.FromCatalog = append(m.FromCatalog, c)
		}
	}
	byModule := func(a, b coordinates.Coordinate) int {
		return cmp.Compare(a.Module(), b.Module())
	}
	slices.SortFunc(m.FromBuildFile, byModule)
	slices.SortFunc(m.FromCatalog, byModule)
	return m
}
