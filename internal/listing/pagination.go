package listing

import (
	"fmt"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// PaginationKind tells guaranteed server totals apart from client estimates.
type PaginationKind int

// Pagination kinds.
const (
	// ServerPaginated metadata came from the backend.
	ServerPaginated PaginationKind = iota
	// ClientApproximated metadata was derived from the fetched records alone.
	// Its total is the length of the current page, not the true server total.
	ClientApproximated
)

func (k PaginationKind) String() string {
	if k == ClientApproximated {
		return "approximate"
	}
	return "server"
}

// Pagination is the page metadata of a listing, tagged with its provenance.
type Pagination struct {
	Kind PaginationKind
	Meta model.PaginationMeta
}

// Server wraps backend metadata.
func Server(meta model.PaginationMeta) Pagination {
	return Pagination{Kind: ServerPaginated, Meta: meta}
}

// Approximated derives metadata for an unpaginated response:
// {page, limit, total: count, pages: ceil(count/limit)}.
func Approximated(page, limit, count int) Pagination {
	return Pagination{
		Kind: ClientApproximated,
		Meta: model.PaginationMeta{
			Page:  page,
			Limit: limit,
			Total: count,
			Pages: model.PagesFor(count, limit),
		},
	}
}

// Approximate reports whether the totals are a client-side estimate.
func (p Pagination) Approximate() bool {
	return p.Kind == ClientApproximated
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Meta.Page > 1
}

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool {
	return p.Meta.Page < p.Meta.Pages
}

// Contains reports whether n is a page that may be requested.
func (p Pagination) Contains(n int) bool {
	return n >= 1 && n <= p.Meta.Pages
}

// Window returns up to five page numbers starting two before the current page.
func (p Pagination) Window() []int {
	const size = 5
	pages := p.Meta.Pages
	start := max(1, p.Meta.Page-2)

	window := make([]int, 0, size)
	for i := 0; i < min(size, pages); i++ {
		n := start + i
		if n > pages {
			break
		}
		window = append(window, n)
	}
	return window
}

// Range returns the 1-based positions of the first and last record on the
// current page and the total. All three are zero for an empty listing.
func (p Pagination) Range() (from, to, total int) {
	m := p.Meta
	if m.Total <= 0 || m.Limit <= 0 || m.Page < 1 {
		return 0, 0, 0
	}
	from = (m.Page-1)*m.Limit + 1
	to = min(m.Page*m.Limit, m.Total)
	if from > to {
		return 0, 0, m.Total
	}
	return from, to, m.Total
}

// Summary renders "Showing X to Y of Z results", marking estimated totals.
func (p Pagination) Summary() string {
	from, to, total := p.Range()
	s := fmt.Sprintf("Showing %d to %d of %d results", from, to, total)
	if p.Approximate() {
		s += " (approximate)"
	}
	return s
}
