package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// StatsUnavailableMessage replaces the cards when the summary could not be loaded.
const StatsUnavailableMessage = "Statistics unavailable"

// StatsPanelModel displays the aggregate order statistics.
type StatsPanelModel struct {
	theme   themes.Theme
	err     string
	stats   model.Stats
	width   int
	loaded  bool
	loading bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	return StatsPanelModel{
		theme: theme,
		width: 80,
	}
}

// SetLoading marks a refresh in flight. Previously loaded numbers stay visible.
func (m *StatsPanelModel) SetLoading() {
	m.loading = true
	m.err = ""
}

// SetStats applies a loaded summary.
func (m *StatsPanelModel) SetStats(stats model.Stats) {
	m.stats = stats
	m.loaded = true
	m.loading = false
	m.err = ""
}

// SetError records a failed load.
func (m *StatsPanelModel) SetError(message string) {
	m.err = message
	m.loading = false
}

// Stats returns the last loaded summary.
func (m StatsPanelModel) Stats() model.Stats {
	return m.stats
}

// Loading reports whether a refresh is in flight.
func (m StatsPanelModel) Loading() bool {
	return m.loading
}

// Resize updates the component size.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
}

// Card is one labelled figure of the panel.
type Card struct {
	Label string
	Value string
}

// Cards returns Total Orders, Total Amount, Successful and Failed.
func (m StatsPanelModel) Cards() []Card {
	if !m.loaded {
		return []Card{
			{Label: "Total Orders", Value: format.Dash},
			{Label: "Total Amount", Value: format.Dash},
			{Label: "Successful", Value: format.Dash},
			{Label: "Failed", Value: format.Dash},
		}
	}
	return []Card{
		{Label: "Total Orders", Value: format.Count(m.stats.TotalOrders)},
		{Label: "Total Amount", Value: format.CurrencyINR(m.stats.TotalAmount)},
		{Label: "Successful", Value: format.Count(m.stats.CountFor(model.StatusSuccess))},
		{Label: "Failed", Value: format.Count(m.stats.CountFor(model.StatusFailed))},
	}
}

// View renders the four cards side by side.
func (m StatsPanelModel) View() string {
	if m.err != "" && !m.loaded {
		return m.theme.Banner.Render(StatsUnavailableMessage + ": " + m.err)
	}

	cards := m.Cards()
	cardWidth := max(18, (m.width-len(cards)*4)/len(cards))
	styles := []lipgloss.Style{m.theme.StatusInfo, m.theme.Bold, m.theme.StatusSuccess, m.theme.StatusError}

	rendered := make([]string, 0, len(cards))
	for i, card := range cards {
		body := lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(card.Label),
			styles[i].Render(card.Value),
		)
		rendered = append(rendered, m.theme.Card.Width(cardWidth).Render(body))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.err != "" {
		row = lipgloss.JoinVertical(lipgloss.Left, row, m.theme.Banner.Render(m.err))
	}
	return row
}

// ChartView renders the status distribution as horizontal bars, one per
// status in display order.
func (m StatsPanelModel) ChartView(barWidth int) string {
	title := m.theme.Subtitle.Render("Status Distribution")
	if !m.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No data"))
	}

	peak := 0
	for _, st := range model.Statuses {
		peak = max(peak, m.stats.CountFor(st))
	}

	lines := make([]string, 0, len(model.Statuses))
	for _, st := range model.Statuses {
		count := m.stats.CountFor(st)
		badge := format.BadgeFor(st)
		lines = append(lines, fmt.Sprintf("%-10s %s %s",
			badge.Label,
			m.renderBar(barWidth, count, peak, m.theme.Badge(badge.Class)),
			format.Count(count),
		))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		strings.Join(lines, "\n"),
	)
}

// renderBar renders a bar of count relative to peak.
func (m StatsPanelModel) renderBar(width, count, peak int, style lipgloss.Style) string {
	filled := 0
	if peak > 0 {
		filled = count * width / peak
	}
	if count > 0 && filled == 0 {
		filled = 1
	}
	return style.Render(strings.Repeat("█", filled)) +
		m.theme.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}
