package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/extract"
	"github.com/agentstation/depsync/pkg/rewrite"
)

func span(start, end int) extract.Span { return extract.Span{Start: start, End: end} }

func TestApply(t *testing.T) {
	src := `dep("com.google.dagger:dagger:2.39")` + "\n" + `dep("com.google.dagger:dagger-compiler:2.39.1")` + "\n"

	t.Run("token exact replacement leaves longer sibling intact", func(t *testing.T) {
		// "2.39" occupies bytes 30..34 of the first line only.
		edit := rewrite.Replace(src, span(30, 34), "2.39.1")
		require.Equal(t, "2.39", edit.Expected)

		got, err := rewrite.Apply("build.gradle.kts", src, []rewrite.Edit{edit})
		require.NoError(t, err)
		assert.Equal(t,
			`dep("com.google.dagger:dagger:2.39.1")`+"\n"+`dep("com.google.dagger:dagger-compiler:2.39.1")`+"\n",
			got)
	})

	t.Run("edits apply regardless of input order", func(t *testing.T) {
		src := "a b c"
		edits := []rewrite.Edit{
			rewrite.Replace(src, span(0, 1), "AAA"),
			rewrite.Replace(src, span(4, 5), "C"),
			rewrite.Replace(src, span(2, 3), ""),
		}
		got, err := rewrite.Apply("", src, edits)
		require.NoError(t, err)
		assert.Equal(t, "AAA  C", got)
	})

	t.Run("insertion", func(t *testing.T) {
		got, err := rewrite.Apply("", "abc", []rewrite.Edit{rewrite.Insert(3, "\nd")})
		require.NoError(t, err)
		assert.Equal(t, "abc\nd", got)
	})

	t.Run("insert before anchor", func(t *testing.T) {
		src := "one\ntwo\n"
		edit := rewrite.InsertBefore(src, span(4, 7), "new\n")
		got, err := rewrite.Apply("", src, []rewrite.Edit{edit})
		require.NoError(t, err)
		assert.Equal(t, "one\nnew\ntwo\n", got)
	})

	t.Run("no edits returns input", func(t *testing.T) {
		got, err := rewrite.Apply("", "same", nil)
		require.NoError(t, err)
		assert.Equal(t, "same", got)
	})
}

func TestApplyRejects(t *testing.T) {
	src := "one\ntwo\n"

	t.Run("moved anchor", func(t *testing.T) {
		edit := rewrite.InsertBefore(src, span(4, 7), "new\n")
		_, err := rewrite.Apply("build.gradle.kts", "zero\none\ntwo\n", []rewrite.Edit{edit})
		require.Error(t, err)
		assert.True(t, errors.IsAnchorNotFound(err))
		assert.Contains(t, err.Error(), "build.gradle.kts")
	})

	t.Run("span out of range", func(t *testing.T) {
		_, err := rewrite.Apply("", "ab", []rewrite.Edit{{Span: span(1, 9), Expected: "b"}})
		assert.True(t, errors.IsAnchorNotFound(err))
	})

	t.Run("overlapping edits", func(t *testing.T) {
		edits := []rewrite.Edit{
			rewrite.Replace(src, span(0, 3), "1"),
			rewrite.Replace(src, span(2, 5), "x"),
		}
		_, err := rewrite.Apply("", src, edits)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("two insertions at the same offset", func(t *testing.T) {
		edits := []rewrite.Edit{rewrite.Insert(0, "a"), rewrite.Insert(0, "b")}
		_, err := rewrite.Apply("", src, edits)
		assert.Error(t, err)
	})
}

func TestNoOp(t *testing.T) {
	assert.True(t, rewrite.Replace("abc", span(0, 3), "abc").NoOp())
	assert.False(t, rewrite.Insert(0, "x").NoOp())
}
