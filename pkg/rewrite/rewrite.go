// Package rewrite applies literal span substitutions to source text.
//
// Every edit records the text it expects to find at its span. Apply refuses to
// touch a text whose captured spans no longer hold that text, so a rewrite
// never lands on the wrong characters.
package rewrite

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/extract"
)

// Edit replaces Span, which must currently hold Expected, with Replacement.
// An empty span with an empty Expected is a pure insertion.
type Edit struct {
	Span        extract.Span
	Expected    string
	Replacement string
}

// Replace returns an edit substituting replacement for span of src.
func Replace(src string, span extract.Span, replacement string) Edit {
	return Edit{Span: span, Expected: span.Text(src), Replacement: replacement}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) Edit {
	return Edit{Span: extract.Span{Start: offset, End: offset}, Replacement: text}
}

// InsertBefore returns an edit inserting text immediately before anchor. The
// anchor text itself is verified when the edit is applied.
func InsertBefore(src string, anchor extract.Span, text string) Edit {
	anchorText := anchor.Text(src)
	return Edit{Span: anchor, Expected: anchorText, Replacement: text + anchorText}
}

// NoOp reports whether applying e would leave the text unchanged.
func (e Edit) NoOp() bool {
	return e.Expected == e.Replacement
}

// Apply applies edits to src. Edits are applied from the highest offset down
// so earlier offsets stay valid. Overlapping edits and edits whose expected
// text is not found at their span are rejected without modifying anything.
func Apply(file, src string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Compare(b.Span.Start, a.Span.Start)
	})

	for i, e := range sorted {
		if e.Span.Start < 0 || e.Span.End > len(src) || e.Span.Start > e.Span.End {
			return "", &errors.AnchorNotFoundError{File: file, Anchor: e.Expected, Offset: e.Span.Start}
		}
		if e.Span.Text(src) != e.Expected {
			return "", &errors.AnchorNotFoundError{File: file, Anchor: e.Expected, Offset: e.Span.Start}
		}
		if i > 0 {
			prev := sorted[i-1]
			if e.Span.End > prev.Span.Start || e.Span.Start == prev.Span.Start {
				return "", errors.NewValidationError("edits", e.Span,
					fmt.Sprintf("edit at %d-%d overlaps edit at %d-%d", e.Span.Start, e.Span.End, prev.Span.Start, prev.Span.End))
			}
		}
	}

	var b strings.Builder
	b.Grow(len(src))
	// sorted is descending; walk it backwards to emit the text front to back.
	cursor := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		b.WriteString(src[cursor:e.Span.Start])
		b.WriteString(e.Replacement)
		cursor = e.Span.End
	}
	b.WriteString(src[cursor:])
	return b.String(), nil
}
