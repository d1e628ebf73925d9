package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/listing"
	"github.com/thisispriyanshii/edviron-frontend/internal/session"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/components"
)

// Texts rendered by the dashboard frame.
const (
	BrandTitle           = "edviron"
	RestoringMessage     = "Checking your session..."
	ActiveFiltersLabel   = "Active filters"
	SchoolListingTitle   = "Transactions for School"
	OverviewTitle        = "Transactions Overview"
	DashboardTitle       = "Payments Dashboard"
	SchoolPickerHint     = "Press / to enter a school ID"
	DemoMarker           = "DEMO"
	filterValueAll       = "all"
	filterValueUnbounded = "any"
	locationLabel        = "Location"
)

var navigationRoutes = []Route{RouteOverview, RouteSchool, RouteStatus, RouteDashboard}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.restored {
		return m.renderLoading(RestoringMessage)
	}

	route := m.route
	if route.Protected() {
		switch m.session.State() {
		case session.Loading, session.Uninitialized:
			return m.renderLoading(RestoringMessage)
		case session.Anonymous:
			route = RouteLogin
		}
	}

	if route == RouteLogin {
		return m.renderLogin()
	}

	var body string
	switch route {
	case RouteOverview:
		body = m.renderOverview()
	case RouteSchool:
		body = m.renderSchool()
	case RouteStatus:
		body = m.statusCheck.View()
	case RouteDashboard:
		body = m.renderDashboard()
	}

	return m.renderFrame(body)
}

// renderLoading renders a centered spinner with a caption.
func (m Model) renderLoading(caption string) string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render(BrandTitle),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Primary).Render(m.spinner.View()),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(caption),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderLogin renders the sign-in screen.
func (m Model) renderLogin() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.login.View(),
	)
}

// renderFrame wraps body with the header and key help.
func (m Model) renderFrame(body string) string {
	parts := []string{m.renderHeader(), ""}
	if m.notice != "" {
		parts = append(parts, m.theme.Banner.Render(m.notice), "")
	}
	parts = append(parts, body, "", m.help.View(m.keymap))

	return m.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderHeader renders the brand, route tabs, signed-in user and location.
func (m Model) renderHeader() string {
	brand := m.theme.Title.Render(BrandTitle)
	if m.config.Demo {
		brand += " " + m.theme.StatusWarning.Render(DemoMarker)
	}

	tabs := make([]string, 0, len(navigationRoutes))
	for i, r := range navigationRoutes {
		label := fmt.Sprintf("%d %s", i+1, r)
		if r == m.route {
			tabs = append(tabs, m.theme.Selected.Render(label))
		} else {
			tabs = append(tabs, m.theme.Normal.Render(label))
		}
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top, brand, "  ", strings.Join(tabs, "  "))

	var user string
	if u, ok := m.session.User(); ok {
		user = lipgloss.NewStyle().Foreground(m.theme.Muted).Render(u.Email)
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(user)-2, 2)
	top := left + strings.Repeat(" ", gap) + user

	loc, ok := m.history.Current()
	if !ok || m.route == RouteStatus || m.route == RouteDashboard {
		return top
	}
	location := lipgloss.NewStyle().Foreground(m.theme.Muted).Render(locationLabel + ": " + loc)
	return lipgloss.JoinVertical(lipgloss.Left, top, location)
}

// renderOverview renders the global listing with its summary cards.
func (m Model) renderOverview() string {
	parts := []string{m.theme.Subtitle.Render(OverviewTitle), m.statsPanel.View(), ""}
	parts = append(parts, m.renderListing(m.overview, m.list)...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderSchool renders the listing of one school, or the school picker.
func (m Model) renderSchool() string {
	if m.school == nil || m.schoolPicker.Focused() {
		parts := []string{m.schoolPicker.View()}
		if !m.schoolPicker.Focused() {
			parts = append(parts, "", lipgloss.NewStyle().Foreground(m.theme.Muted).Render(SchoolPickerHint))
		}
		if m.school == nil {
			return lipgloss.JoinVertical(lipgloss.Left, parts...)
		}
		parts = append(parts, "")
		parts = append(parts, m.renderListing(m.school, m.schoolList)...)
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts := []string{
		m.theme.Subtitle.Render(SchoolListingTitle),
		m.theme.Normal.Render("School ID: " + m.school.Scope().SchoolID),
		"",
	}
	parts = append(parts, m.renderListing(m.school, m.schoolList)...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderListing renders the filter bar, then exactly one of the error banner,
// the filter form, the detail view or the table, then pagination.
func (m Model) renderListing(ctrl *listing.Controller, list components.TransactionListModel) []string {
	if ctrl == nil {
		return []string{list.View()}
	}

	parts := []string{m.renderFilterBar(ctrl.State(), ctrl.Scope().Scoped())}

	switch {
	case m.filterForm.Visible():
		parts = append(parts, m.filterForm.View())
	case m.showDetail:
		parts = append(parts, m.detail.View())
	case ctrl.Phase() == listing.Failed:
		parts = append(parts, m.theme.Banner.Render(ctrl.ErrorMessage()))
	default:
		parts = append(parts, list.View())
	}

	if ctrl.Phase() == listing.Ready && !m.showDetail && !m.filterForm.Visible() {
		parts = append(parts, components.RenderPagination(ctrl.Pagination(), m.theme))
	}
	return parts
}

// renderFilterBar summarizes the filter state of a listing.
func (m Model) renderFilterBar(s filter.State, scoped bool) string {
	label := lipgloss.NewStyle().Foreground(m.theme.Muted)

	status := s.Status
	if status == "" {
		status = filterValueAll
	}

	arrow := "▼"
	if s.Order == filter.OrderAsc {
		arrow = "▲"
	}

	items := []string{
		label.Render("Status: ") + m.theme.Normal.Render(status),
		label.Render("Sort: ") + m.theme.Normal.Render(s.Sort+" "+arrow),
		label.Render("Per page: ") + m.theme.Normal.Render(fmt.Sprint(s.Limit)),
	}
	if !scoped {
		school := s.SchoolID
		if school == "" {
			school = filterValueAll
		}
		items = append(items, label.Render("School: ")+m.theme.Normal.Render(school))
	}
	items = append(items, label.Render("Dates: ")+m.theme.Normal.Render(dateRange(s.StartDate, s.EndDate)))

	bar := strings.Join(items, "  ")
	if s.HasActiveFilters() {
		bar += "  " + m.theme.StatusInfo.Render(ActiveFiltersLabel)
	}
	return bar
}

func dateRange(start, end string) string {
	if start == "" && end == "" {
		return filterValueUnbounded
	}
	if start == "" {
		start = filterValueUnbounded
	}
	if end == "" {
		end = filterValueUnbounded
	}
	return start + " → " + end
}

// renderDashboard renders the summary cards and the status chart.
func (m Model) renderDashboard() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render(DashboardTitle),
		m.statsPanel.View(),
		"",
		m.statsPanel.ChartView(defaultStatsBarWidth),
	)
}
