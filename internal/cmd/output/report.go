package output

import (
	"io"

	"github.com/agentstation/depsync"
	"github.com/agentstation/depsync/pkg/events"
)

// ResultData converts a pass result into a table of events.
func ResultData(title string, result *depsync.Result) Data {
	rows := make([][]string, 0, len(result.Events))
	for _, e := range result.Events {
		rows = append(rows, []string{KindLabel(e.Kind), orDash(e.Old), e.New})
	}

	return Data{
		Title:           title,
		Headers:         []string{"Change", "From", "To"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft},
		Footer:          result.Summary(),
	}
}

// WriteResult renders result in format. Table and markdown output show the
// event table; json and yaml output the result itself.
func WriteResult(w io.Writer, format Format, title string, result *depsync.Result) error {
	formatter := NewFormatter(format)
	switch format {
	case FormatJSON, FormatYAML:
		return formatter.Format(w, result)
	default:
		return formatter.Format(w, ResultData(title, result))
	}
}

// KindLabel returns the short column label for an event kind.
func KindLabel(kind events.Kind) string {
	switch kind {
	case events.AddedToCatalog:
		return "catalog +"
	case events.AddedToBuildFile:
		return "build file +"
	case events.UpdatedCatalogVersion:
		return "catalog ~"
	case events.UpdatedBuildFileVersion:
		return "build file ~"
	default:
		return string(kind)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
