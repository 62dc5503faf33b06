package listops

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
		hasNext  bool
		hasPrev  bool
		pages    int
	}{
		{name: "first page", page: 1, pageSize: 3, want: []int{1, 2, 3}, hasNext: true, hasPrev: false, pages: 3},
		{name: "middle page", page: 2, pageSize: 3, want: []int{4, 5, 6}, hasNext: true, hasPrev: true, pages: 3},
		{name: "last short page", page: 3, pageSize: 3, want: []int{7}, hasNext: false, hasPrev: true, pages: 3},
		{name: "past the end", page: 5, pageSize: 3, want: []int{}, hasNext: false, hasPrev: true, pages: 3},
		{name: "page below one clamps", page: 0, pageSize: 3, want: []int{1, 2, 3}, hasNext: true, hasPrev: false, pages: 3},
		{name: "page size covers all", page: 1, pageSize: 10, want: items, hasNext: false, hasPrev: false, pages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, tt.pageSize)
			require.Equal(t, tt.want, p.Data)
			require.Equal(t, len(items), p.TotalItems)
			require.Equal(t, tt.pages, p.TotalPages)
			require.Equal(t, tt.hasNext, p.HasNextPage)
			require.Equal(t, tt.hasPrev, p.HasPrevPage)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string{}, 1, 10)
	require.Empty(t, p.Data)
	require.Zero(t, p.TotalItems)
	require.Zero(t, p.TotalPages)
	require.False(t, p.HasNextPage)
	require.False(t, p.HasPrevPage)
}

func TestPaginateReassembles(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	var joined []int
	for page := 1; ; page++ {
		p := Paginate(items, page, 4)
		joined = append(joined, p.Data...)
		if !p.HasNextPage {
			break
		}
	}
	require.Equal(t, items, joined)
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4, 5}, func(n int) bool { return n%2 == 0 })
	require.Equal(t, []int{2, 4}, got)
}

func TestSortBy(t *testing.T) {
	in := []string{"pear", "fig", "apple"}
	got := SortBy(in, func(a, b string) bool { return a < b })
	require.Equal(t, []string{"apple", "fig", "pear"}, got)
	require.Equal(t, []string{"pear", "fig", "apple"}, in, "input must not be reordered")
}

func TestSortByStable(t *testing.T) {
	type pair struct{ k, seq int }
	in := []pair{{1, 0}, {0, 1}, {1, 2}, {0, 3}}
	got := SortBy(in, func(a, b pair) bool { return a.k < b.k })
	require.Equal(t, []pair{{0, 1}, {0, 3}, {1, 0}, {1, 2}}, got)
}

func TestGroupBy(t *testing.T) {
	got := GroupBy([]string{"ant", "bee", "ape"}, func(s string) byte { return s[0] })
	require.Equal(t, map[byte][]string{'a': {"ant", "ape"}, 'b': {"bee"}}, got)
}
