package view

// Metric helpers for per-module reducers. Metrics are computed over the
// whole collection, not the current projection, and degenerate inputs
// always yield zero values rather than NaN or a panic.

// CountBy tallies items per key.
func CountBy[T any](items []T, key func(T) string) map[string]int {
	counts := map[string]int{}
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}

// Count returns the number of items for which pred holds.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Sum totals a numeric field across items.
func Sum[T any](items []T, value func(T) float64) float64 {
	total := 0.0
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Ratio returns part/total, or 0 when total is 0.
func Ratio(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total
}

// Mean averages a numeric field across items, 0 when items is empty.
func Mean[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, value) / float64(len(items))
}
