package catalogs

import (
	"fmt"

	"github.com/agentstation/depsync/pkg/coordinates"
	"github.com/agentstation/depsync/pkg/extract"
)

// Entry is a library entry of the catalog. It is a closed set: the only
// implementations are *SimpleEntry and *ComplexEntry, and consumers switch
// over both.
type Entry interface {
	// Alias is the catalog key of the entry.
	Alias() string
	// Coordinate returns the entry's dependency with its effective version.
	Coordinate() coordinates.Coordinate
	// Render formats the entry as a single catalog line.
	Render() string

	sealed()
}

// SimpleEntry is `alias = "group:artifact:version"`.
type SimpleEntry struct {
	Name       string
	Dependency coordinates.Coordinate
	// Comment is the trailing comment, with its leading whitespace.
	Comment string
	// Span is the entry's original text, zero for synthesized entries.
	Span extract.Span
}

// NewSimpleEntry creates a synthesized simple entry.
func NewSimpleEntry(alias string, c coordinates.Coordinate) *SimpleEntry {
	return &SimpleEntry{Name: alias, Dependency: c}
}

// Alias implements Entry.
func (e *SimpleEntry) Alias() string { return e.Name }

// Coordinate implements Entry.
func (e *SimpleEntry) Coordinate() coordinates.Coordinate { return e.Dependency }

// Render implements Entry.
func (e *SimpleEntry) Render() string {
	return fmt.Sprintf("%s = %q", e.Name, e.Dependency.String()) + e.Comment
}

// WithVersion returns a copy of e at version.
func (e *SimpleEntry) WithVersion(version string) *SimpleEntry {
	c := *e
	c.Dependency = e.Dependency.WithVersion(version)
	return &c
}

func (*SimpleEntry) sealed() {}

// ComplexEntry is `alias = { module = "group:artifact", version.ref = "ref" }`.
// Its version lives in the referenced VersionDefinition, which the catalog
// owns; the entry only points at it.
type ComplexEntry struct {
	Name       string
	Module     coordinates.Key
	VersionRef string
	Definition *VersionDefinition
	Comment    string
	Span       extract.Span
}

// Alias implements Entry.
func (e *ComplexEntry) Alias() string { return e.Name }

// Coordinate implements Entry.
func (e *ComplexEntry) Coordinate() coordinates.Coordinate {
	var version string
	if e.Definition != nil {
		version = e.Definition.Version
	}
	return coordinates.New(e.Module.Group, e.Module.Artifact, version)
}

// Render implements Entry.
func (e *ComplexEntry) Render() string {
	return fmt.Sprintf("%s = { module = %q, version.ref = %q }", e.Name, e.Module.String(), e.VersionRef) + e.Comment
}

func (*ComplexEntry) sealed() {}

// VersionDefinition is one line of the [versions] table.
type VersionDefinition struct {
	Alias   string
	Version string
	// Span covers the whole definition; ValueSpan only the version text
	// between the quotes.
	Span      extract.Span
	ValueSpan extract.Span
}

// GroupKey returns the key entries are grouped under when the libraries
// block is rendered: the group with '.' replaced by '-', or the alias when
// the entry has no group.
func GroupKey(e Entry) string {
	group := e.Coordinate().Group
	if group == "" {
		return e.Alias()
	}
	out := []byte(group)
	for i := range out {
		if out[i] == '.' {
			out[i] = '-'
		}
	}
	return string(out)
}
