package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thisispriyanshii/edviron-frontend/internal/listing"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	tuitest "github.com/thisispriyanshii/edviron-frontend/internal/tui/testing"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

func TestRenderPagination(t *testing.T) {
	tests := []struct {
		name      string
		p         listing.Pagination
		contains  []string
		forbidden []string
	}{
		{
			name:      "single page shows only the summary",
			p:         listing.Server(model.PaginationMeta{Page: 1, Limit: 10, Total: 7, Pages: 1}),
			contains:  []string{"Showing 1 to 7 of 7 results"},
			forbidden: []string{"Prev", "Next", "approximate"},
		},
		{
			name:     "middle page",
			p:        listing.Server(model.PaginationMeta{Page: 3, Limit: 10, Total: 95, Pages: 10}),
			contains: []string{"Showing 21 to 30 of 95 results", "← Prev", " 1 ", " 5 ", "Next →"},
		},
		{
			name:      "approximated totals are flagged",
			p:         listing.Approximated(1, 10, 10),
			contains:  []string{"Showing 1 to 10 of 10 results (approximate)"},
			forbidden: []string{"Next →"},
		},
		{
			name:     "empty listing",
			p:        listing.Server(model.PaginationMeta{Page: 1, Limit: 20}),
			contains: []string{"Showing 0 to 0 of 0 results"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tuitest.StripANSI(RenderPagination(tt.p, themes.Default))
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
			for _, unwanted := range tt.forbidden {
				assert.NotContains(t, view, unwanted)
			}
		})
	}
}
