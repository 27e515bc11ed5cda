package crud

import "strings"

// All is the categorical filter sentinel that matches every record.
const All = "all"

// Query is the read-path state of a page: free-text search plus an exact
// categorical facet.
type Query struct {
	Search string `json:"search"`
	Filter string `json:"filter"`
}

// IsAll reports whether the filter is the "all"/"All" sentinel. An empty
// filter is treated as the sentinel.
func (q Query) IsAll() bool {
	return q.Filter == "" || q.Filter == All || q.Filter == "All"
}

// Matches reports whether a record with the given searchable fields and
// facet value is visible under q.
func (q Query) Matches(fields []string, facet string) bool {
	if !q.IsAll() && facet != q.Filter {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Visible returns the records matching q, preserving their order.
// searchable lists the fields free-text search looks at; facet returns the
// value compared against the categorical filter and may be nil, in which
// case the filter is ignored.
func Visible[T any](records []T, q Query, searchable func(T) []string, facet func(T) string) []T {
	if facet == nil {
		q.Filter = All
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var fv string
		if facet != nil {
			fv = facet(rec)
		}
		if q.Matches(searchable(rec), fv) {
			out = append(out, rec)
		}
	}
	return out
}
