package coordinates

import (
	"strconv"
	"strings"
)

// stoplist holds generic namespace segments that never appear in a derived alias.
var stoplist = map[string]struct{}{
	"app":    {},
	"com":    {},
	"dev":    {},
	"github": {},
	"gitlab": {},
	"io":     {},
	"me":     {},
	"net":    {},
	"org":    {},
}

// DeriveAlias synthesizes a catalog alias for group:artifact.
//
// The group and artifact are split on '.' and '-', stoplist segments are
// dropped from the group, adjacent duplicate segments collapse and the result
// is joined with '-' and lower-cased:
//
//	androidx.activity:activity-ktx   -> androidx-activity-ktx
//	com.google.dagger:dagger         -> google-dagger
//	io.ktor:ktor-client-core         -> ktor-client-core
func DeriveAlias(group, artifact string) string {
	var segments []string
	for _, s := range splitSegments(group) {
		if _, skip := stoplist[strings.ToLower(s)]; skip {
			continue
		}
		segments = append(segments, s)
	}
	segments = append(segments, splitSegments(artifact)...)

	collapsed := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.ToLower(s)
		if n := len(collapsed); n > 0 && collapsed[n-1] == s {
			continue
		}
		collapsed = append(collapsed, s)
	}
	return strings.Join(collapsed, "-")
}

// UniqueAlias returns base, or base suffixed with -2, -3, ... until taken
// reports false.
func UniqueAlias(base string, taken func(alias string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

func splitSegments(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '-'
	})
}
