// Package coordinates models dependency coordinates of the form
// group:artifact:version and derives catalog aliases from them.
package coordinates

import (
	"fmt"
	"strings"

	"github.com/agentstation/depsync/pkg/errors"
)

// Key identifies a dependency independent of its version.
type Key struct {
	Group    string
	Artifact string
}

// String returns "group:artifact".
func (k Key) String() string {
	return k.Group + ":" + k.Artifact
}

// Coordinate is a group:artifact:version triple. Version is kept exactly as
// written; comparisons go through the versions package.
type Coordinate struct {
	Group    string `json:"group" yaml:"group"`
	Artifact string `json:"artifact" yaml:"artifact"`
	Version  string `json:"version" yaml:"version"`
}

// New creates a coordinate.
func New(group, artifact, version string) Coordinate {
	return Coordinate{Group: group, Artifact: artifact, Version: version}
}

// Parse parses "group:artifact:version".
func Parse(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Coordinate{}, errors.NewValidationError("coordinate", s,
			fmt.Sprintf("expected group:artifact:version, got %q", s))
	}
	return New(parts[0], parts[1], parts[2]), nil
}

// ParseModule parses "group:artifact" and attaches version.
func ParseModule(module, version string) (Coordinate, error) {
	parts := strings.Split(module, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, errors.NewValidationError("module", module,
			fmt.Sprintf("expected group:artifact, got %q", module))
	}
	return New(parts[0], parts[1], version), nil
}

// Key returns the version-independent identity of c.
func (c Coordinate) Key() Key {
	return Key{Group: c.Group, Artifact: c.Artifact}
}

// Module returns "group:artifact".
func (c Coordinate) Module() string {
	return c.Key().String()
}

// String returns "group:artifact:version".
func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// WithVersion returns a copy of c carrying version.
func (c Coordinate) WithVersion(version string) Coordinate {
	c.Version = version
	return c
}
