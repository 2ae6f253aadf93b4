package completeness

import "fmt"

// Source is one table: a header row naming the columns and the data rows
// beneath it. Every data row must be exactly as wide as the header.
type Source struct {
	Name   string
	Header []string
	Rows   [][]Value
}

// checkRow returns a FormatError when row i (0-based) is ragged.
func (s Source) checkRow(i int) error {
	if got, want := len(s.Rows[i]), len(s.Header); got != want {
		return &FormatError{
			Source: s.Name,
			Row:    i + 1,
			Msg:    fmt.Sprintf("row has %d cells, header has %d", got, want),
		}
	}
	return nil
}
