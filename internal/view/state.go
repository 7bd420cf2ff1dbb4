package view

import "strings"

// FilterAll is the sentinel filter value meaning "no constraint".
const FilterAll = "all"

// Direction orders a sorted projection.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// State is the transient, UI-driven view configuration for one module.
// The display mode tags how the projection is rendered and never affects
// the projected data.
type State struct {
	Tab       string
	Query     string
	Filters   map[string][]string
	SortField string
	SortDir   Direction
	Display   string
}

// NewState returns a state showing the given tab with no search, no
// filters, and no sort.
func NewState(tab string) State {
	return State{Tab: tab, SortDir: Ascending, Filters: map[string][]string{}}
}

// WithSearch returns a copy with the search query set.
func (s State) WithSearch(query string) State {
	s.Query = query
	return s
}

// WithFilter returns a copy with the accepted values for one filter field
// set. No values, or the single value "all", clears the constraint.
func (s State) WithFilter(field string, values ...string) State {
	filters := make(map[string][]string, len(s.Filters)+1)
	for k, v := range s.Filters {
		filters[k] = v
	}
	if len(values) == 0 || (len(values) == 1 && values[0] == FilterAll) {
		delete(filters, field)
	} else {
		filters[field] = values
	}
	s.Filters = filters
	return s
}

// WithSort returns a copy sorted by the given field and direction.
func (s State) WithSort(field string, dir Direction) State {
	s.SortField = field
	if dir != Descending {
		dir = Ascending
	}
	s.SortDir = dir
	return s
}

// WithTab returns a copy with the active collection switched.
func (s State) WithTab(tab string) State {
	s.Tab = tab
	return s
}

// WithDisplay returns a copy with the display mode tag set.
func (s State) WithDisplay(mode string) State {
	s.Display = mode
	return s
}

func (s State) normalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(s.Query))
}
