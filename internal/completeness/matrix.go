package completeness

// Matrix is the rendered percent matrix. Row 0 is the header: an empty
// corner cell followed by the catalog. Each later row is an entity name
// followed by one cell per catalog column.
type Matrix [][]string

// Header returns the catalog columns without the corner cell.
func (m Matrix) Header() []string {
	if len(m) == 0 {
		return nil
	}
	return m[0][1:]
}

// Body returns the entity rows.
func (m Matrix) Body() [][]string {
	if len(m) < 2 {
		return nil
	}
	return m[1:]
}

// Build projects sparse reports onto the dense catalog. Entities appear in
// the order given and are matched to reports by exact name; a missing
// report or column leaves the cell blank.
func Build(catalog Catalog, entities []string, reports []Report) Matrix {
	byName := make(map[string]Report, len(reports))
	for _, r := range reports {
		if _, dup := byName[r.Name]; !dup {
			byName[r.Name] = r
		}
	}
	m := make(Matrix, 0, len(entities)+1)
	header := make([]string, 0, len(catalog)+1)
	header = append(header, "")
	header = append(header, catalog...)
	m = append(m, header)
	for _, name := range entities {
		row := make([]string, 0, len(catalog)+1)
		row = append(row, name)
		rep := byName[name]
		for _, col := range catalog {
			if f, ok := rep.Lookup(col); ok {
				row = append(row, f.String())
			} else {
				row = append(row, "")
			}
		}
		m = append(m, row)
	}
	return m
}

// PercentMatrix runs the ungrouped pipeline: count every source, drop
// entries outside the threshold and project onto the unified catalog.
func PercentMatrix(srcs []Source, threshold float64) (Matrix, []Report, error) {
	reports := make([]Report, 0, len(srcs))
	entities := make([]string, 0, len(srcs))
	for _, s := range srcs {
		rep, err := Count(s)
		if err != nil {
			return nil, nil, err
		}
		reports = append(reports, rep)
		entities = append(entities, s.Name)
	}
	filtered := make([]Report, 0, len(reports))
	for _, r := range reports {
		f, err := Filter(r, threshold)
		if err != nil {
			return nil, nil, err
		}
		filtered = append(filtered, f)
	}
	return Build(UnifySources(srcs), entities, filtered), reports, nil
}

// GroupedMatrix runs the grouped pipeline over a single source.
func GroupedMatrix(src Source, key string) (Matrix, []Report, error) {
	reports, catalog, err := AggregateGrouped(src, key)
	if err != nil {
		return nil, nil, err
	}
	entities := make([]string, len(reports))
	for i, r := range reports {
		entities[i] = r.Name
	}
	return Build(catalog, entities, reports), reports, nil
}
