package record

// Filter selects records by source list and region. Zero fields match
// everything.
type Filter struct {
	Kind   Kind
	Region string
}

// Match reports whether r passes the filter.
func (f Filter) Match(r Record) bool {
	if f.Kind != "" && r.Kind != f.Kind {
		return false
	}
	if f.Region != "" && r.Region != f.Region {
		return false
	}
	return true
}

// Apply returns the matching records, keeping their order.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
