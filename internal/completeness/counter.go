package completeness

// Count computes one source's completeness report. The denominator is the
// number of data rows. Columns sharing a name accumulate into one entry.
// A header-only source has no encountered columns and yields an empty report.
func Count(src Source) (Report, error) {
	total := len(src.Rows)
	filled := make(map[string]int)
	var order []string
	for i, row := range src.Rows {
		if err := src.checkRow(i); err != nil {
			return Report{}, err
		}
		for j, v := range row {
			name := src.Header[j]
			if name == "" {
				continue
			}
			if _, ok := filled[name]; !ok {
				filled[name] = 0
				order = append(order, name)
			}
			if v.Present() {
				filled[name]++
			}
		}
	}
	rep := Report{Name: src.Name, Entries: make([]Entry, 0, len(order))}
	for _, name := range order {
		rep.Entries = append(rep.Entries, Entry{Column: name, Value: Formula{Filled: filled[name], Total: total}})
	}
	return rep, nil
}
