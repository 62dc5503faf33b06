// Package listops holds pure helpers for working with already-fetched
// collections. The remote services return bulk, unordered result sets, so
// sorting and pagination happen client-side; these helpers compensate for
// that and hold no state. They are shaped like a server-side paginated query
// so a real one could replace them without touching call sites.
package listops

import "sort"

// Page is one client-side page over a materialized collection.
type Page[T any] struct {
	Data        []T
	TotalItems  int
	TotalPages  int
	CurrentPage int
	HasNextPage bool
	HasPrevPage bool
}

// Paginate slices items into the requested page. Page numbers start at 1;
// out-of-range pages yield an empty Data slice with correct flags.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Data:        items[start:end],
		TotalItems:  total,
		TotalPages:  (total + pageSize - 1) / pageSize,
		CurrentPage: page,
		HasNextPage: page*pageSize < total,
		HasPrevPage: page > 1,
	}
}

// Filter returns the items for which keep is true.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// SortBy returns a sorted copy of items; the input is left untouched.
// The sort is stable so equal elements keep their fetched order.
func SortBy[T any](items []T, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// GroupBy buckets items by the given key.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, it := range items {
		k := key(it)
		out[k] = append(out[k], it)
	}
	return out
}
