package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

func TestPagination_Window(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		pages int
		want  []int
	}{
		{name: "no pages", page: 1, pages: 0, want: []int{}},
		{name: "single page", page: 1, pages: 1, want: []int{1}},
		{name: "start", page: 1, pages: 10, want: []int{1, 2, 3, 4, 5}},
		{name: "second page", page: 2, pages: 10, want: []int{1, 2, 3, 4, 5}},
		{name: "middle", page: 6, pages: 10, want: []int{4, 5, 6, 7, 8}},
		{name: "near end", page: 9, pages: 10, want: []int{7, 8, 9, 10}},
		{name: "last", page: 10, pages: 10, want: []int{8, 9, 10}},
		{name: "few pages", page: 3, pages: 3, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Server(model.PaginationMeta{Page: tt.page, Limit: 20, Pages: tt.pages, Total: tt.pages * 20})
			assert.Equal(t, tt.want, p.Window())
		})
	}
}

func TestPagination_Range(t *testing.T) {
	p := Server(model.PaginationMeta{Page: 3, Limit: 20, Total: 45, Pages: 3})
	from, to, total := p.Range()
	assert.Equal(t, []int{41, 45, 45}, []int{from, to, total})
	assert.Equal(t, "Showing 41 to 45 of 45 results", p.Summary())

	empty := Server(model.PaginationMeta{Page: 1, Limit: 20})
	from, to, total = empty.Range()
	assert.Equal(t, []int{0, 0, 0}, []int{from, to, total})
}

func TestPagination_Approximated(t *testing.T) {
	p := Approximated(1, 20, 21)
	assert.True(t, p.Approximate())
	assert.Equal(t, 2, p.Meta.Pages)
	assert.Equal(t, "Showing 1 to 20 of 21 results (approximate)", p.Summary())
	assert.Equal(t, "approximate", p.Kind.String())

	empty := Approximated(1, 20, 0)
	assert.Equal(t, 0, empty.Meta.Pages)
	assert.False(t, empty.Contains(1))
}

func TestPagination_Bounds(t *testing.T) {
	p := Server(model.PaginationMeta{Page: 2, Limit: 10, Total: 30, Pages: 3})
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.True(t, p.Contains(3))
	assert.False(t, p.Contains(4))

	last := Server(model.PaginationMeta{Page: 3, Limit: 10, Total: 30, Pages: 3})
	assert.False(t, last.HasNext())
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)

	_, ok := h.Back()
	assert.False(t, ok)

	h.Push("/transactions")
	h.Push("/transactions")
	h.Push("/transactions?page=2")
	assert.Equal(t, 2, h.Len())

	loc, ok := h.Back()
	assert.True(t, ok)
	assert.Equal(t, "/transactions", loc)

	_, ok = h.Back()
	assert.False(t, ok)

	for _, l := range []string{"/a", "/b", "/c", "/d"} {
		h.Push(l)
	}
	assert.Equal(t, 3, h.Len())
	cur, _ := h.Current()
	assert.Equal(t, "/d", cur)
}
