package extract

import "strings"

// tableHeader matches a standard "[name]" table header on its own line.
// Array-of-tables headers ("[[name]]") are not matched.
var tableHeader = MustShape("table-header",
	`(?m)^[ \t]*\[[ \t]*(?P<name>[^\[\]\n]+?)[ \t]*\][ \t]*(?:#[^\n]*)?$`, "name")

// Table is one table of a catalog text.
type Table struct {
	Name   string
	Header Span
	// Body runs from the end of the header line's closing bracket to the
	// start of the next header, or to the end of the text.
	Body Span
}

// Tables returns the tables of src in text order.
func Tables(src string) []Table {
	headers := tableHeader.FindAll(src)
	tables := make([]Table, 0, len(headers))
	for i, h := range headers {
		end := len(src)
		if i+1 < len(headers) {
			end = headers[i+1].Span.Start
		}
		tables = append(tables, Table{
			Name:   h.Group("name"),
			Header: h.Span,
			Body:   Span{Start: h.Span.End, End: end},
		})
	}
	return tables
}

// FindTable returns the first table named name.
func FindTable(src, name string) (Table, bool) {
	for _, t := range Tables(src) {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Unmatched returns the non-blank lines of region that no match touches,
// trimmed of trailing whitespace, in text order.
func Unmatched(src string, region Span, matches []Match) []string {
	var lines []string
	offset := region.Start
	for _, line := range strings.SplitAfter(region.Text(src), "\n") {
		lineSpan := Span{Start: offset, End: offset + len(line)}
		offset += len(line)

		trimmed := strings.TrimRight(line, " \t\r\n")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		if touchesAny(lineSpan, matches) {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

func touchesAny(line Span, matches []Match) bool {
	for _, m := range matches {
		if m.Span.Start < line.End && m.Span.End > line.Start {
			return true
		}
	}
	return false
}
