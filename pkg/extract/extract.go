// Package extract finds recognized declaration shapes in raw source text.
//
// A Shape is a named pattern whose capture groups are named too. Every match
// carries the span of the whole declaration and of each capture, as byte
// offsets into the original text, so later rewrites can replace exactly the
// characters that were read.
//
// Text that matches no shape is excluded from the results. Nothing is reported
// for it; callers that need to preserve such text use Unmatched.
package extract

import (
	"fmt"
	"regexp"
	"slices"
)

// Span is a half-open byte range [Start, End) within a source text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Text returns the substring of src covered by s.
func (s Span) Text(src string) string { return src[s.Start:s.End] }

// Shift returns s moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Contains reports whether inner lies entirely within s.
func (s Span) Contains(inner Span) bool {
	return inner.Start >= s.Start && inner.End <= s.End
}

// Match is a single occurrence of a Shape.
type Match struct {
	Shape string
	Span  Span
	Text  string

	groups map[string]Span
	src    string
}

// Group returns the text captured by the named group, or "" when the group
// did not participate in the match.
func (m Match) Group(name string) string {
	sp, ok := m.groups[name]
	if !ok {
		return ""
	}
	return sp.Text(m.src)
}

// GroupSpan returns the span of the named group.
func (m Match) GroupSpan(name string) (Span, bool) {
	sp, ok := m.groups[name]
	return sp, ok
}

// Shape is an immutable named pattern with named captures.
type Shape struct {
	name     string
	re       *regexp.Regexp
	captures []string
}

// NewShape compiles pattern and checks that every name in required is a
// named capture of it.
func NewShape(name, pattern string, required ...string) (*Shape, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling shape %s: %w", name, err)
	}
	names := re.SubexpNames()
	for _, r := range required {
		if !slices.Contains(names, r) {
			return nil, fmt.Errorf("shape %s: pattern has no capture named %q", name, r)
		}
	}
	var captures []string
	for _, n := range names {
		if n != "" {
			captures = append(captures, n)
		}
	}
	return &Shape{name: name, re: re, captures: captures}, nil
}

// MustShape is like NewShape but panics on error. It is meant for
// package-level shape variables.
func MustShape(name, pattern string, required ...string) *Shape {
	s, err := NewShape(name, pattern, required...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the shape name.
func (s *Shape) Name() string { return s.name }

// Captures returns the named captures of the shape, in pattern order.
func (s *Shape) Captures() []string { return slices.Clone(s.captures) }

// FindAll returns every non-overlapping match in src.
func (s *Shape) FindAll(src string) []Match {
	return s.FindAllIn(src, Span{Start: 0, End: len(src)})
}

// FindAllIn returns every match within the region of src covered by within.
// Spans are absolute offsets into src.
func (s *Shape) FindAllIn(src string, within Span) []Match {
	region := within.Text(src)
	locs := s.re.FindAllStringSubmatchIndex(region, -1)
	if len(locs) == 0 {
		return nil
	}

	names := s.re.SubexpNames()
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		m := Match{
			Shape:  s.name,
			Span:   Span{Start: loc[0], End: loc[1]}.Shift(within.Start),
			groups: make(map[string]Span, len(s.captures)),
			src:    src,
		}
		m.Text = m.Span.Text(src)
		for i := 1; i < len(names); i++ {
			if names[i] == "" || loc[2*i] < 0 {
				continue
			}
			m.groups[names[i]] = Span{Start: loc[2*i], End: loc[2*i+1]}.Shift(within.Start)
		}
		matches = append(matches, m)
	}
	return matches
}

// Match reports whether s matches anywhere in text.
func (s *Shape) Match(text string) bool {
	return s.re.MatchString(text)
}
