// Package versions orders dependency versions.
//
// Versions are compared on a truncated view holding at most the first three
// dot-separated components, parsed as semantic versions. The original string
// is never altered; callers write back whichever original text wins.
package versions

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/agentstation/depsync/pkg/constants"
	"github.com/agentstation/depsync/pkg/errors"
)

// Truncate returns the first three dot-separated components of version.
//
//	Truncate("1.2.3.4")     == "1.2.3"
//	Truncate("7.0.0-rc02")  == "7.0.0-rc02"
//	Truncate("2.39")        == "2.39"
func Truncate(version string) string {
	parts := strings.SplitN(version, ".", constants.SemVerSize+1)
	if len(parts) > constants.SemVerSize {
		parts = parts[:constants.SemVerSize]
	}
	return strings.Join(parts, ".")
}

// Parse parses the truncated view of version.
func Parse(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(Truncate(version))
	if err != nil {
		return nil, &errors.VersionParseError{Version: version, Err: err}
	}
	return v, nil
}

// Compare returns -1, 0 or 1 as a is lower than, equal to or higher than b.
// Identical strings compare equal without parsing.
func Compare(a, b string) (int, error) {
	if a == b {
		return 0, nil
	}
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// Max returns the highest of candidates. The earliest candidate wins ties.
func Max(candidates ...string) (string, error) {
	if len(candidates) == 0 {
		return "", errors.NewValidationError("versions", nil, "no versions to compare")
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		cmp, err := Compare(c, best)
		if err != nil {
			return "", err
		}
		if cmp > 0 {
			best = c
		}
	}
	return best, nil
}
