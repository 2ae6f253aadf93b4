package completeness

// groupAcc tallies one group: how many rows carry its key and, per column,
// how many of those rows held a value.
type groupAcc struct {
	count int
	cols  []string
	tally map[string]int
}

// AggregateGrouped partitions src by the key column and reports completeness
// per group. Groups come back in first-seen order; the returned catalog is
// the source header without the key.
//
// A group's first row seeds its tallies from its own values (truthy -> 1,
// otherwise 0). Later rows increment a tracked column only when their value
// is truthy, so numeric zero never counts here, unlike Count.
func AggregateGrouped(src Source, key string) ([]Report, Catalog, error) {
	catalog := Unify(src.Header)
	if !catalog.Contains(key) {
		return nil, nil, &KeyNotFoundError{Source: src.Name, Key: key}
	}
	catalog = catalog.Without(key)

	groups := make(map[string]*groupAcc)
	var order []string
	for i, row := range src.Rows {
		if err := src.checkRow(i); err != nil {
			return nil, nil, err
		}
		// later duplicates of a header name shadow earlier ones
		vals := make(map[string]Value, len(row))
		for j, v := range row {
			vals[src.Header[j]] = v
		}
		g := vals[key].Key()
		acc, ok := groups[g]
		if !ok {
			acc = &groupAcc{count: 1, tally: make(map[string]int, len(catalog))}
			for _, col := range catalog {
				acc.cols = append(acc.cols, col)
				if vals[col].Truthy() {
					acc.tally[col] = 1
				} else {
					acc.tally[col] = 0
				}
			}
			groups[g] = acc
			order = append(order, g)
			continue
		}
		acc.count++
		for _, col := range acc.cols {
			if vals[col].Truthy() {
				acc.tally[col]++
			}
		}
	}

	reports := make([]Report, 0, len(order))
	for _, g := range order {
		acc := groups[g]
		rep := Report{Name: g, Entries: make([]Entry, 0, len(acc.cols))}
		for _, col := range acc.cols {
			rep.Entries = append(rep.Entries, Entry{Column: col, Value: Formula{Filled: acc.tally[col], Total: acc.count}})
		}
		reports = append(reports, rep)
	}
	return reports, catalog, nil
}
