package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// SchoolPickerModel asks for the school whose transactions to list.
type SchoolPickerModel struct {
	theme themes.Theme
	input textinput.Model
}

// NewSchoolPicker creates the school id prompt.
func NewSchoolPicker(theme themes.Theme) SchoolPickerModel {
	in := textinput.New()
	in.Placeholder = "school id"
	in.CharLimit = 64
	in.Width = 36
	return SchoolPickerModel{theme: theme, input: in}
}

// Focus focuses the input.
func (m *SchoolPickerModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur releases the input.
func (m *SchoolPickerModel) Blur() {
	m.input.Blur()
}

// Focused reports whether keys go to the input.
func (m SchoolPickerModel) Focused() bool {
	return m.input.Focused()
}

// Update handles messages.
func (m SchoolPickerModel) Update(msg tea.Msg) (SchoolPickerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.input.Focused() {
		switch msg.String() {
		case "enter":
			id := strings.TrimSpace(m.input.Value())
			if id == "" {
				return m, nil
			}
			m.input.Blur()
			return m, func() tea.Msg { return SchoolSubmittedMsg{SchoolID: id} }
		case "esc":
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m SchoolPickerModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Transactions by School"),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Enter a school ID, or press s on a row in the overview"),
		lipgloss.JoinHorizontal(lipgloss.Top, m.theme.Bold.Render("School ID "), m.input.View()),
	)
}
