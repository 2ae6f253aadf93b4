package completeness

import "fmt"

// Entry is one column's completeness within a report.
type Entry struct {
	Column string
	Value  Formula
}

// Report holds the completeness of every column observed for one entity:
// a whole source, or one group within a source.
type Report struct {
	Name    string
	Entries []Entry
}

// Lookup returns the formula recorded for column.
func (r Report) Lookup(column string) (Formula, bool) {
	for _, e := range r.Entries {
		if e.Column == column {
			return e.Value, true
		}
	}
	return Formula{}, false
}

// DefaultThreshold admits every percentage from 0 to 100.
const DefaultThreshold = -1.0

// Filter keeps the entries whose decoded percentage p satisfies threshold < p < 101.
func Filter(r Report, threshold float64) (Report, error) {
	out := Report{Name: r.Name, Entries: make([]Entry, 0, len(r.Entries))}
	for _, e := range r.Entries {
		p, err := Decode(e.Value.String())
		if err != nil {
			return Report{}, fmt.Errorf("%s - %s: %w", r.Name, e.Column, err)
		}
		if p > threshold && p < 101 {
			out.Entries = append(out.Entries, e)
		}
	}
	return out, nil
}

// Listing flattens reports into "<entity> - <column>: <formula>" lines,
// applying the threshold filter first.
func Listing(reports []Report, threshold float64) ([]string, error) {
	var lines []string
	for _, r := range reports {
		f, err := Filter(r, threshold)
		if err != nil {
			return nil, err
		}
		for _, e := range f.Entries {
			lines = append(lines, fmt.Sprintf("%s - %s: %s", f.Name, e.Column, e.Value))
		}
	}
	return lines, nil
}
