package completeness

// Catalog is the ordered union of column names across sources.
type Catalog []string

// Unify merges headers in the order given, keeping the first occurrence of
// every non-empty name.
func Unify(headers ...[]string) Catalog {
	seen := make(map[string]struct{})
	out := Catalog{}
	for _, h := range headers {
		for _, name := range h {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// UnifySources is Unify over the headers of srcs.
func UnifySources(srcs []Source) Catalog {
	headers := make([][]string, len(srcs))
	for i, s := range srcs {
		headers[i] = s.Header
	}
	return Unify(headers...)
}

// Contains reports whether name is in the catalog.
func (c Catalog) Contains(name string) bool {
	for _, n := range c {
		if n == name {
			return true
		}
	}
	return false
}

// Without returns a copy of c with name removed.
func (c Catalog) Without(name string) Catalog {
	out := make(Catalog, 0, len(c))
	for _, n := range c {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
