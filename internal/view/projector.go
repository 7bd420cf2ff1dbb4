package view

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Schema declares, statically per record kind, which fields the projector
// may search, filter, and sort on.
type Schema[T any] struct {
	// Search accessors; a record matches when the query is a
	// case-insensitive substring of any of them.
	Search []func(T) string
	// Filter accessors keyed by filter field name.
	Filter map[string]func(T) string
	// Sort comparators keyed by sort field name; build with ByText,
	// ByTime, or ByNumber.
	Sort map[string]func(a, b T) int
}

// ByText compares a text field case-insensitively; an absent value sorts
// as the empty string.
func ByText[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
	}
}

// ByTime compares a date field chronologically; an absent value is the
// zero time and sorts first ascending.
func ByTime[T any](get func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return get(a).Compare(get(b))
	}
}

// ByNumber compares a numeric field; an absent value is zero.
func ByNumber[T any](get func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(get(a), get(b))
	}
}

// Project derives the ordered, filtered, searched subset of items for the
// given view state. It is pure: items is never mutated and the same inputs
// always produce the same output. Ties keep the input order (stable sort);
// an unknown sort field leaves the input order untouched.
func Project[T any](items []T, schema Schema[T], state State) []T {
	query := state.normalizedQuery()

	out := make([]T, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesSearch(item, schema.Search, query) {
			continue
		}
		if !matchesFilters(item, schema.Filter, state.Filters) {
			continue
		}
		out = append(out, item)
	}

	if cmpFn, ok := schema.Sort[state.SortField]; ok {
		if state.SortDir == Descending {
			inner := cmpFn
			cmpFn = func(a, b T) int { return inner(b, a) }
		}
		slices.SortStableFunc(out, cmpFn)
	}

	return out
}

func matchesSearch[T any](item T, fields []func(T) string, query string) bool {
	for _, get := range fields {
		value := get(item)
		if value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, fields map[string]func(T) string, filters map[string][]string) bool {
	for field, accepted := range filters {
		if len(accepted) == 0 {
			continue
		}
		get, ok := fields[field]
		if !ok {
			continue
		}
		value := get(item)
		matched := false
		for _, want := range accepted {
			if want == FilterAll || want == value {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
