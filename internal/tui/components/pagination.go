package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/listing"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// RenderPagination renders the listing footer: the result summary, the page
// window with the current page highlighted, and prev/next hints that dim at
// the bounds.
func RenderPagination(p listing.Pagination, theme themes.Theme) string {
	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	summary := muted.Render(p.Summary())

	if p.Meta.Pages <= 1 {
		return summary
	}

	prev := theme.Normal.Render("← Prev")
	if !p.HasPrev() {
		prev = muted.Render("← Prev")
	}
	next := theme.Normal.Render("Next →")
	if !p.HasNext() {
		next = muted.Render("Next →")
	}

	window := p.Window()
	pages := make([]string, 0, len(window))
	for _, n := range window {
		label := " " + strconv.Itoa(n) + " "
		if n == p.Meta.Page {
			pages = append(pages, theme.Selected.Render(label))
			continue
		}
		pages = append(pages, theme.Normal.Render(label))
	}

	controls := strings.Join([]string{prev, strings.Join(pages, ""), next}, "  ")
	return lipgloss.JoinHorizontal(lipgloss.Top, summary, "    ", controls)
}
