// Package catalogs reads a TOML version catalog into its versions and library
// entries, and renders the canonical form of the [libraries] table.
//
// Only three line shapes are understood: version definitions, simple entries
// and complex entries that reference a version definition. Anything else is
// left in place (outside [libraries]) or carried over verbatim (inside it).
package catalogs

import (
	"maps"
	"slices"
	"strings"

	"github.com/agentstation/depsync/pkg/constants"
	"github.com/agentstation/depsync/pkg/coordinates"
	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/extract"
	"github.com/agentstation/depsync/pkg/versions"
)

const (
	aliasPattern = `(?P<alias>[A-Za-z0-9_.\-]+)`

	// commentPattern is a trailing comment kept with its entry.
	commentPattern = `(?P<comment>[ \t]*#[^\n]*)?`
)

var (
	versionShape = extract.MustShape("version",
		`(?m)^[ \t]*`+aliasPattern+`[ \t]*=[ \t]*"(?P<version>[^"\n]*)"`,
		"alias", "version")

	simpleShape = extract.MustShape("simple",
		`(?m)^[ \t]*`+aliasPattern+`[ \t]*=[ \t]*"(?P<coordinate>[^":\s]+:[^":\s]+:[^":\s]+)"`+commentPattern,
		"alias", "coordinate", "comment")

	complexShape = extract.MustShape("complex",
		`(?m)^[ \t]*`+aliasPattern+`[ \t]*=[ \t]*\{\s*module\s*=\s*"(?P<module>[^":\s]+:[^":\s]+)"\s*,\s*version\.ref\s*=\s*"(?P<ref>[^"\s]+)"\s*\}`+commentPattern,
		"alias", "module", "ref", "comment")

	// keyShape finds the key of any key/value line, bare or quoted.
	keyShape = extract.MustShape("key",
		`^[ \t]*(?P<key>[A-Za-z0-9_\-]+|"[^"\n]*")[ \t]*[=.]`,
		"key")
)

// Catalog is the parsed form of one catalog text. It is read-only once
// parsed; changes are expressed as edits against Text.
type Catalog struct {
	Text string

	// Definitions are the [versions] entries in text order.
	Definitions []*VersionDefinition
	// Entries are the recognized [libraries] entries in text order.
	Entries []Entry
	// Preserved are the unrecognized, non-blank [libraries] lines.
	Preserved []string
	// Reserved are the keys of Preserved lines.
	Reserved []string

	libraries    extract.Table
	hasLibraries bool
	versions     map[string]*VersionDefinition
}

// Parse parses text. A complex entry whose version.ref has no definition is
// an *errors.UndefinedVersionAliasError.
func Parse(text string) (*Catalog, error) {
	c := &Catalog{
		Text:     text,
		versions: make(map[string]*VersionDefinition),
	}

	if vt, ok := extract.FindTable(text, constants.VersionsTable); ok {
		for _, m := range versionShape.FindAllIn(text, vt.Body) {
			value, _ := m.GroupSpan("version")
			def := &VersionDefinition{
				Alias:     m.Group("alias"),
				Version:   m.Group("version"),
				Span:      m.Span,
				ValueSpan: value,
			}
			c.Definitions = append(c.Definitions, def)
			if _, dup := c.versions[def.Alias]; !dup {
				c.versions[def.Alias] = def
			}
		}
	}

	lt, ok := extract.FindTable(text, constants.LibrariesTable)
	if !ok {
		return c, nil
	}
	c.libraries, c.hasLibraries = lt, true

	var matched []extract.Match
	for _, m := range simpleShape.FindAllIn(text, lt.Body) {
		dependency, err := coordinates.Parse(m.Group("coordinate"))
		if err != nil {
			return nil, err
		}
		matched = append(matched, m)
		c.Entries = append(c.Entries, &SimpleEntry{
			Name:       m.Group("alias"),
			Dependency: dependency,
			Comment:    commentOf(m),
			Span:       m.Span,
		})
	}
	for _, m := range complexShape.FindAllIn(text, lt.Body) {
		ref := m.Group("ref")
		def, found := c.versions[ref]
		if !found {
			return nil, &errors.UndefinedVersionAliasError{
				Entry:      m.Group("alias"),
				Module:     m.Group("module"),
				VersionRef: ref,
			}
		}
		dependency, err := coordinates.ParseModule(m.Group("module"), def.Version)
		if err != nil {
			return nil, err
		}
		matched = append(matched, m)
		c.Entries = append(c.Entries, &ComplexEntry{
			Name:       m.Group("alias"),
			Module:     dependency.Key(),
			VersionRef: ref,
			Definition: def,
			Comment:    commentOf(m),
			Span:       m.Span,
		})
	}
	slices.SortFunc(c.Entries, func(a, b Entry) int {
		return spanOf(a).Start - spanOf(b).Start
	})

	c.Preserved = extract.Unmatched(text, lt.Body, matched)
	for _, line := range c.Preserved {
		for _, m := range keyShape.FindAll(line) {
			c.Reserved = append(c.Reserved, strings.Trim(m.Group("key"), `"`))
		}
	}
	return c, nil
}

// commentOf returns the trailing comment of m without trailing whitespace.
func commentOf(m extract.Match) string {
	return strings.TrimRight(m.Group("comment"), " \t\r")
}

// Definition returns the version definition named alias.
func (c *Catalog) Definition(alias string) (*VersionDefinition, bool) {
	d, ok := c.versions[alias]
	return d, ok
}

// HasLibraries reports whether the text has a [libraries] table.
func (c *Catalog) HasLibraries() bool { return c.hasLibraries }

// Siblings returns every complex entry referencing the definition named ref,
// in text order.
func (c *Catalog) Siblings(ref string) []*ComplexEntry {
	var out []*ComplexEntry
	for _, e := range c.Entries {
		if ce, ok := e.(*ComplexEntry); ok && ce.VersionRef == ref {
			out = append(out, ce)
		}
	}
	return out
}

// Index returns one entry per group:artifact, keeping the highest version
// when a dependency is listed more than once.
func Index(entries []Entry) (map[coordinates.Key]Entry, error) {
	index := make(map[coordinates.Key]Entry, len(entries))
	for _, e := range entries {
		key := e.Coordinate().Key()
		existing, ok := index[key]
		if !ok {
			index[key] = e
			continue
		}
		cmp, err := versions.Compare(e.Coordinate().Version, existing.Coordinate().Version)
		if err != nil {
			return nil, withCoordinate(err, e.Coordinate())
		}
		if cmp > 0 {
			index[key] = e
		}
	}
	return index, nil
}

// Aliases returns the set of aliases used by entries.
func Aliases(entries []Entry) map[string]coordinates.Key {
	out := make(map[string]coordinates.Key, len(entries))
	for _, e := range entries {
		out[e.Alias()] = e.Coordinate().Key()
	}
	return out
}

// Taken returns every key of the [libraries] table. Keys of preserved lines
// map to the zero Key, so no coordinate can claim them.
func (c *Catalog) Taken() map[string]coordinates.Key {
	taken := Aliases(c.Entries)
	for _, key := range c.Reserved {
		if _, ok := taken[key]; !ok {
			taken[key] = coordinates.Key{}
		}
	}
	return taken
}

// Synthesize returns simple entries for coords, with derived aliases that do
// not collide with taken or with each other. coords are processed in the
// order given; taken is not modified.
func Synthesize(taken map[string]coordinates.Key, coords []coordinates.Coordinate) []*SimpleEntry {
	taken = maps.Clone(taken)
	if taken == nil {
		taken = make(map[string]coordinates.Key)
	}
	out := make([]*SimpleEntry, 0, len(coords))
	for _, c := range coords {
		base := coordinates.DeriveAlias(c.Group, c.Artifact)
		alias := coordinates.UniqueAlias(base, func(a string) bool {
			owner, used := taken[a]
			return used && owner != c.Key()
		})
		taken[alias] = c.Key()
		out = append(out, NewSimpleEntry(alias, c))
	}
	return out
}

func spanOf(e Entry) extract.Span {
	switch v := e.(type) {
	case *SimpleEntry:
		return v.Span
	case *ComplexEntry:
		return v.Span
	default:
		panic("catalogs: unknown entry type")
	}
}

func withCoordinate(err error, c coordinates.Coordinate) error {
	var vpe *errors.VersionParseError
	if errors.As(err, &vpe) && vpe.Coordinate == "" {
		vpe.Coordinate = c.Module()
	}
	return err
}

// trimTrailing splits s into its content and its trailing whitespace.
func trimTrailing(s string) (string, string) {
	content := strings.TrimRight(s, " \t\r\n")
	return content, s[len(content):]
}
