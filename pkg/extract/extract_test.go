package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/depsync/pkg/extract"
)

var pair = extract.MustShape("pair", `(?m)^(?P<key>\w+) = "(?P<value>[^"]*)"`, "key", "value")

func TestNewShape(t *testing.T) {
	t.Run("missing required capture", func(t *testing.T) {
		_, err := extract.NewShape("bad", `(?P<key>\w+)`, "key", "value")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"value"`)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := extract.NewShape("bad", `(`)
		assert.Error(t, err)
	})

	t.Run("MustShape panics", func(t *testing.T) {
		assert.Panics(t, func() { extract.MustShape("bad", `(`) })
	})

	t.Run("captures listed in order", func(t *testing.T) {
		assert.Equal(t, []string{"key", "value"}, pair.Captures())
		assert.Equal(t, "pair", pair.Name())
	})
}

func TestFindAll(t *testing.T) {
	src := "a = \"1\"\nnot a pair\nb = \"22\"\n"

	matches := pair.FindAll(src)
	require.Len(t, matches, 2)

	assert.Equal(t, "a", matches[0].Group("key"))
	assert.Equal(t, "1", matches[0].Group("value"))
	assert.Equal(t, `a = "1"`, matches[0].Text)
	assert.Equal(t, extract.Span{Start: 0, End: 7}, matches[0].Span)

	sp, ok := matches[1].GroupSpan("value")
	require.True(t, ok)
	assert.Equal(t, "22", sp.Text(src))
	assert.Equal(t, "", matches[1].Group("missing"))
}

func TestFindAllInUsesAbsoluteOffsets(t *testing.T) {
	src := "x = \"0\"\n[t]\ny = \"9\"\n"
	within := extract.Span{Start: 12, End: len(src)}

	matches := pair.FindAllIn(src, within)
	require.Len(t, matches, 1)
	sp, _ := matches[0].GroupSpan("value")
	assert.Equal(t, "9", src[sp.Start:sp.End])
	assert.True(t, within.Contains(matches[0].Span))
}

func TestTables(t *testing.T) {
	src := "# header comment\n[versions]\nkotlin = \"1.9.0\"\n\n[libraries] # libs\nfoo = \"g:a:1\"\n[[plugins]]\n[bundles]\n"

	tables := extract.Tables(src)
	require.Len(t, tables, 3)
	assert.Equal(t, "versions", tables[0].Name)
	assert.Equal(t, "libraries", tables[1].Name)
	assert.Equal(t, "bundles", tables[2].Name)

	assert.Equal(t, "\nkotlin = \"1.9.0\"\n\n", tables[0].Body.Text(src))
	assert.Equal(t, "\nfoo = \"g:a:1\"\n[[plugins]]\n", tables[1].Body.Text(src))
	assert.Equal(t, "\n", tables[2].Body.Text(src))

	lib, ok := extract.FindTable(src, "libraries")
	require.True(t, ok)
	assert.Equal(t, "[libraries] # libs", lib.Header.Text(src))

	_, ok = extract.FindTable(src, "plugins")
	assert.False(t, ok)
}

func TestUnmatched(t *testing.T) {
	src := "\n# keep me\na = \"1\"\n   \nweird line   \nb = \"2\"\n"
	region := extract.Span{Start: 0, End: len(src)}

	got := extract.Unmatched(src, region, pair.FindAll(src))
	assert.Equal(t, []string{"# keep me", "weird line"}, got)
}

func TestSpan(t *testing.T) {
	s := extract.Span{Start: 2, End: 5}
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, extract.Span{Start: 4, End: 7}, s.Shift(2))
	assert.Equal(t, "cde", s.Text("abcdefg"))
	assert.False(t, s.Contains(extract.Span{Start: 1, End: 3}))
}
