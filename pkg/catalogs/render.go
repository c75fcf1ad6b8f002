package catalogs

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/depsync/pkg/constants"
	"github.com/agentstation/depsync/pkg/extract"
	"github.com/agentstation/depsync/pkg/rewrite"
)

// RenderEntries renders entries in canonical order: entries are grouped by
// GroupKey, sorted by alias within a group, and groups are ordered by their
// rendered text and separated by a blank line. The result has no leading or
// trailing newline.
func RenderEntries(entries []Entry) string {
	byKey := make(map[string][]Entry)
	for _, e := range entries {
		k := GroupKey(e)
		byKey[k] = append(byKey[k], e)
	}

	type group struct {
		key  string
		text string
	}
	groups := make([]group, 0, len(byKey))
	for key, members := range byKey {
		sorted := slices.Clone(members)
		slices.SortStableFunc(sorted, func(a, b Entry) int {
			if c := cmp.Compare(a.Alias(), b.Alias()); c != 0 {
				return c
			}
			return cmp.Compare(a.Render(), b.Render())
		})
		lines := make([]string, len(sorted))
		for i, e := range sorted {
			lines[i] = e.Render()
		}
		groups = append(groups, group{key: key, text: strings.Join(lines, "\n")})
	}

	slices.SortFunc(groups, func(a, b group) int {
		if c := cmp.Compare(a.text, b.text); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})

	texts := make([]string, len(groups))
	for i, g := range groups {
		texts[i] = g.text
	}
	return strings.Join(texts, "\n\n")
}

// RenderLibraries renders the body of a [libraries] table: a newline ending
// the header line, the preserved lines, the canonical entries and then
// trailing, the whitespace that ended the original body.
func RenderLibraries(entries []Entry, preserved []string, trailing string) string {
	var parts []string
	if len(preserved) > 0 {
		parts = append(parts, strings.Join(preserved, "\n"))
	}
	if len(entries) > 0 {
		parts = append(parts, RenderEntries(entries))
	}
	return "\n" + strings.Join(parts, "\n\n") + trailing
}

// LibrariesEdit returns the edit that replaces the [libraries] table body of c
// with entries in canonical order. ok is false when the text already holds
// exactly that body, or when there is nothing to write.
func (c *Catalog) LibrariesEdit(entries []Entry) (edit rewrite.Edit, ok bool) {
	if !c.hasLibraries {
		if len(entries) == 0 {
			return rewrite.Edit{}, false
		}
		var b strings.Builder
		if c.Text != "" {
			if !strings.HasSuffix(c.Text, "\n") {
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		b.WriteString("[" + constants.LibrariesTable + "]")
		b.WriteString(RenderLibraries(entries, nil, "\n"))
		return rewrite.Insert(len(c.Text), b.String()), true
	}

	body := c.libraries.Body
	content, trailing := trimTrailing(body.Text(c.Text))
	if strings.TrimSpace(content) == "" && len(entries) == 0 {
		return rewrite.Edit{}, false
	}

	edit = rewrite.Replace(c.Text, body, RenderLibraries(entries, c.Preserved, trailing))
	if edit.NoOp() {
		return rewrite.Edit{}, false
	}
	return edit, true
}

// DefinitionEdit returns the edit setting the version of def to version.
func (c *Catalog) DefinitionEdit(def *VersionDefinition, version string) rewrite.Edit {
	return rewrite.Replace(c.Text, def.ValueSpan, version)
}

// LibrariesBody returns the span of the [libraries] table body.
func (c *Catalog) LibrariesBody() (extract.Span, bool) {
	return c.libraries.Body, c.hasLibraries
}
