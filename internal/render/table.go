package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Formats accepted by WriteTable.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// WriteTable renders m to w as a terminal table, Markdown or CSV. With
// evaluate set, formula cells are replaced by their percentage.
func WriteTable(w io.Writer, m completeness.Matrix, format string, evaluate bool) error {
	if len(m) == 0 {
		_, _ = fmt.Fprintln(w, "(empty matrix)")
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(m[0]))
	for i, h := range m[0] {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range m.Body() {
		out := make(table.Row, len(row))
		for i, v := range row {
			if i == 0 || !evaluate || v == "" {
				out[i] = v
				continue
			}
			fm, err := completeness.ParseFormula(v)
			if err != nil {
				return err
			}
			out[i] = strconv.FormatFloat(fm.Percent(), 'f', 1, 64)
		}
		t.AppendRow(out)
	}

	switch format {
	case FormatMarkdown, "md":
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	case FormatTable, "":
		t.Render()
	default:
		return fmt.Errorf("unsupported format: %s (use table|markdown|csv)", format)
	}
	return nil
}
