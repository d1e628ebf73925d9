package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// Filter form fields.
const (
	fieldStatus = iota
	fieldSchool
	fieldStart
	fieldEnd
	fieldCount
)

var fieldLabels = [fieldCount]string{"Status", "School ID", "Start date", "End date"}

// FilterFormModel edits the narrowing filters of a listing.
type FilterFormModel struct {
	theme   themes.Theme
	err     string
	inputs  [fieldCount]textinput.Model
	focus   int
	scoped  bool
	visible bool
}

// NewFilterForm creates a hidden form. A scoped form has no school field.
func NewFilterForm(theme themes.Theme, scoped bool) FilterFormModel {
	m := FilterFormModel{theme: theme, scoped: scoped}

	placeholders := [fieldCount]string{
		"created, pending, success, failed or cancelled",
		"school id",
		filter.DateLayout,
		filter.DateLayout,
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 64
		in.Width = 40
		m.inputs[i] = in
	}
	return m
}

// Open shows the form pre-filled with s.
func (m *FilterFormModel) Open(s filter.State) tea.Cmd {
	m.visible = true
	m.err = ""
	m.inputs[fieldStatus].SetValue(s.Status)
	m.inputs[fieldSchool].SetValue(s.SchoolID)
	m.inputs[fieldStart].SetValue(s.StartDate)
	m.inputs[fieldEnd].SetValue(s.EndDate)
	return m.setFocus(fieldStatus)
}

// Close hides the form.
func (m *FilterFormModel) Close() {
	m.visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// SetError shows a rejection under the form and keeps it open.
func (m *FilterFormModel) SetError(message string) {
	m.err = message
}

// Visible reports whether the form is open.
func (m FilterFormModel) Visible() bool {
	return m.visible
}

// Patch builds the patch the form currently describes. Every field is set so
// that emptied inputs clear their filter.
func (m FilterFormModel) Patch() filter.Patch {
	value := func(i int) *string {
		return filter.Ptr(strings.TrimSpace(m.inputs[i].Value()))
	}

	p := filter.Patch{
		Status:    filter.Ptr(strings.ToLower(*value(fieldStatus))),
		StartDate: value(fieldStart),
		EndDate:   value(fieldEnd),
	}
	if !m.scoped {
		p.SchoolID = value(fieldSchool)
	}
	return p
}

// Update handles messages.
func (m FilterFormModel) Update(msg tea.Msg) (FilterFormModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.Close()
			return m, func() tea.Msg { return FilterCancelledMsg{} }
		case "enter":
			patch := m.Patch()
			return m, func() tea.Msg { return FilterSubmittedMsg{Patch: patch} }
		case "tab", "down":
			return m, m.setFocus(m.step(1))
		case "shift+tab", "up":
			return m, m.setFocus(m.step(-1))
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// step returns the next visible field in direction dir.
func (m FilterFormModel) step(dir int) int {
	next := m.focus
	for {
		next = (next + dir + fieldCount) % fieldCount
		if !(m.scoped && next == fieldSchool) {
			return next
		}
	}
}

func (m *FilterFormModel) setFocus(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		if j != i {
			m.inputs[j].Blur()
		}
	}
	return m.inputs[i].Focus()
}

// View renders the form.
func (m FilterFormModel) View() string {
	if !m.visible {
		return ""
	}

	lines := []string{m.theme.Title.Render("Filter Transactions")}
	for i, in := range m.inputs {
		if m.scoped && i == fieldSchool {
			continue
		}
		label := m.theme.Bold.Width(12).Render(fieldLabels[i])
		if i == m.focus {
			label = lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Width(12).Render(fieldLabels[i])
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, " ", in.View()))
	}
	if m.err != "" {
		lines = append(lines, "", m.theme.Banner.Render(m.err))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(m.theme.Muted).
		Render("tab next field · enter apply · esc cancel"))

	return m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
