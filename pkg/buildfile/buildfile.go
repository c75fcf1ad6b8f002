// Package buildfile reads the managed dependency declarations of a build
// script.
//
// A managed declaration is a single line calling the marker configuration
// with a literal coordinate:
//
//	dependencySync("com.google.dagger:dagger:2.39")
//	dependencySync 'com.google.dagger:dagger:2.39'
//
// Declarations outside the marker, commented-out lines, declarations inside
// /* */ blocks and coordinates built from variables are not part of the
// model.
package buildfile

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/agentstation/depsync/pkg/constants"
	"github.com/agentstation/depsync/pkg/coordinates"
	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/extract"
	"github.com/agentstation/depsync/pkg/rewrite"
	"github.com/agentstation/depsync/pkg/versions"
)

var defaultShape = shapeFor(constants.DefaultMarker)

// shapeFor builds the declaration shape for marker. The marker must start the
// line or follow a non-identifier character; the first call on a line wins.
func shapeFor(marker string) *extract.Shape {
	return extract.MustShape("declaration",
		`(?m)^(?P<prefix>(?:[^\n]*?[^A-Za-z0-9_\n])??`+regexp.QuoteMeta(marker)+`[ \t]*\(?[ \t]*["'])`+
			`(?P<literal>(?P<group>[^"':\s]+):(?P<artifact>[^"':\s]+):(?P<version>[^"':\s]+))`+
			`(?P<suffix>["'][^\n]*)$`,
		"prefix", "literal", "version", "suffix")
}

// Declaration is one managed declaration.
type Declaration struct {
	Coordinate coordinates.Coordinate
	// Line covers the whole line without its newline.
	Line extract.Span
	// Literal covers the group:artifact:version text.
	Literal extract.Span
	// VersionSpan covers only the version token.
	VersionSpan extract.Span
	// Prefix and Suffix are the line text around Literal.
	Prefix string
	Suffix string
}

// File is the managed view of one build script text.
type File struct {
	Path         string
	Text         string
	Marker       string
	Declarations []Declaration
}

// Parse extracts the declarations managed by marker from text. An empty
// marker selects constants.DefaultMarker.
func Parse(path, text, marker string) *File {
	shape := defaultShape
	if marker == "" {
		marker = constants.DefaultMarker
	}
	if marker != constants.DefaultMarker {
		shape = shapeFor(marker)
	}

	f := &File{Path: path, Text: text, Marker: marker}
	blocks := blockComments(text)
	for _, m := range shape.FindAll(text) {
		prefix := m.Group("prefix")
		literal, _ := m.GroupSpan("literal")
		if commented(prefix) || insideAny(blocks, literal.Start) {
			continue
		}
		coordinate, err := coordinates.Parse(m.Group("literal"))
		if err != nil {
			continue
		}
		versionSpan, _ := m.GroupSpan("version")
		f.Declarations = append(f.Declarations, Declaration{
			Coordinate:  coordinate,
			Line:        m.Span,
			Literal:     literal,
			VersionSpan: versionSpan,
			Prefix:      prefix,
			Suffix:      m.Group("suffix"),
		})
	}
	return f
}

func commented(prefix string) bool {
	trimmed := strings.TrimSpace(prefix)
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "#")
}

// blockComments returns the spans of every /* */ comment in text. String
// literals and line comments are skipped so a "/*" inside them opens nothing.
// An unterminated comment runs to the end of text.
func blockComments(text string) []extract.Span {
	var spans []extract.Span
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '"' || c == '\'':
			for i++; i < len(text) && text[i] != c && text[i] != '\n'; i++ {
				if text[i] == '\\' {
					i++
				}
			}
		case strings.HasPrefix(text[i:], "//"):
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return append(spans, extract.Span{Start: i, End: len(text)})
			}
			spans = append(spans, extract.Span{Start: i, End: i + 2 + end + 2})
			i += 2 + end + 1
		}
	}
	return spans
}

func insideAny(spans []extract.Span, offset int) bool {
	for _, sp := range spans {
		if sp.Start <= offset && offset < sp.End {
			return true
		}
	}
	return false
}

// RequireManaged returns an *errors.NoManagedDependenciesError when f has no
// managed declarations.
func (f *File) RequireManaged() error {
	if len(f.Declarations) == 0 {
		return &errors.NoManagedDependenciesError{File: f.Path, Marker: f.Marker}
	}
	return nil
}

// Anchor returns the last managed declaration in text order.
func (f *File) Anchor() (Declaration, error) {
	if err := f.RequireManaged(); err != nil {
		return Declaration{}, err
	}
	return f.Declarations[len(f.Declarations)-1], nil
}

// Index returns one coordinate per group:artifact, keeping the highest
// version when a dependency is declared more than once.
func (f *File) Index() (map[coordinates.Key]coordinates.Coordinate, error) {
	index := make(map[coordinates.Key]coordinates.Coordinate, len(f.Declarations))
	for _, d := range f.Declarations {
		key := d.Coordinate.Key()
		existing, ok := index[key]
		if !ok {
			index[key] = d.Coordinate
			continue
		}
		c, err := versions.Compare(d.Coordinate.Version, existing.Version)
		if err != nil {
			var vpe *errors.VersionParseError
			if errors.As(err, &vpe) {
				vpe.Coordinate = key.String()
			}
			return nil, err
		}
		if c > 0 {
			index[key] = d.Coordinate
		}
	}
	return index, nil
}

// DeclarationsOf returns every declaration of key in text order.
func (f *File) DeclarationsOf(key coordinates.Key) []Declaration {
	var out []Declaration
	for _, d := range f.Declarations {
		if d.Coordinate.Key() == key {
			out = append(out, d)
		}
	}
	return out
}

// InsertEdit returns the edit inserting one declaration per coordinate before
// the anchor line. The new lines reuse the anchor's prefix and suffix and are
// ordered by group:artifact. A further marker call sharing the anchor's line
// is not part of its suffix.
func (f *File) InsertEdit(missing []coordinates.Coordinate) (rewrite.Edit, error) {
	anchor, err := f.Anchor()
	if err != nil {
		return rewrite.Edit{}, err
	}

	sorted := slices.Clone(missing)
	slices.SortFunc(sorted, func(a, b coordinates.Coordinate) int {
		return cmp.Compare(a.Module(), b.Module())
	})

	newline := "\n"
	if strings.HasSuffix(anchor.Suffix, "\r") {
		newline = "\r\n"
	}
	suffix := ownSuffix(strings.TrimSuffix(anchor.Suffix, "\r"), f.Marker)

	var b strings.Builder
	for _, c := range sorted {
		b.WriteString(anchor.Prefix)
		b.WriteString(c.String())
		b.WriteString(suffix)
		b.WriteString(newline)
	}
	return rewrite.InsertBefore(f.Text, anchor.Line, b.String()), nil
}

// ownSuffix cuts suffix before the first later call of marker, dropping the
// separator between the two calls.
func ownSuffix(suffix, marker string) string {
	for from := 1; from < len(suffix); {
		i := strings.Index(suffix[from:], marker)
		if i < 0 {
			break
		}
		at := from + i
		if !isIdentByte(suffix[at-1]) {
			return strings.TrimRight(suffix[:at], " \t;")
		}
		from = at + 1
	}
	return suffix
}

func isIdentByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// VersionEdit returns the edit replacing the version token of d. The token
// is replaced whole, never as a substring of a longer version.
func (f *File) VersionEdit(d Declaration, version string) rewrite.Edit {
	return rewrite.Replace(f.Text, d.VersionSpan, version)
}
