package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// LoginFormModel is the sign-in form.
type LoginFormModel struct {
	theme      themes.Theme
	notice     string
	err        string
	email      textinput.Model
	password   textinput.Model
	submitting bool
}

// NewLoginForm creates the sign-in form with the email field focused.
func NewLoginForm(theme themes.Theme) LoginFormModel {
	email := textinput.New()
	email.Placeholder = "you@school.edu"
	email.CharLimit = 254
	email.Width = 36

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 36

	return LoginFormModel{
		theme:    theme,
		email:    email,
		password: password,
	}
}

// Focus focuses the email field.
func (m *LoginFormModel) Focus() tea.Cmd {
	m.password.Blur()
	return m.email.Focus()
}

// SetNotice shows an informational line above the form, e.g. why the user
// was sent back to sign in.
func (m *LoginFormModel) SetNotice(notice string) {
	m.notice = notice
}

// Notice returns the informational line.
func (m LoginFormModel) Notice() string {
	return m.notice
}

// SetError shows a failed attempt and re-enables the form.
func (m *LoginFormModel) SetError(message string) {
	m.err = message
	m.submitting = false
}

// Reset clears the fields and messages.
func (m *LoginFormModel) Reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.err = ""
	m.notice = ""
	m.submitting = false
}

// Submitting reports whether a sign-in is in flight.
func (m LoginFormModel) Submitting() bool {
	return m.submitting
}

// Update handles messages.
func (m LoginFormModel) Update(msg tea.Msg) (LoginFormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return m, m.toggleFocus()
		case "enter":
			if m.submitting {
				return m, nil
			}
			if m.email.Focused() && m.password.Value() == "" {
				return m, m.toggleFocus()
			}
			m.submitting = true
			m.err = ""
			creds := model.Credentials{
				Email:    strings.TrimSpace(m.email.Value()),
				Password: m.password.Value(),
			}
			return m, func() tea.Msg { return LoginSubmittedMsg{Credentials: creds} }
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *LoginFormModel) toggleFocus() tea.Cmd {
	if m.email.Focused() {
		m.email.Blur()
		return m.password.Focus()
	}
	m.password.Blur()
	return m.email.Focus()
}

// View renders the form.
func (m LoginFormModel) View() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	lines := []string{
		m.theme.Title.Render("Sign in to edviron"),
		muted.Render("Payments dashboard for schools"),
	}
	if m.notice != "" {
		lines = append(lines, m.theme.StatusWarning.Render(m.notice))
	}
	lines = append(lines,
		"",
		m.theme.Bold.Render("Email"),
		m.email.View(),
		m.theme.Bold.Render("Password"),
		m.password.View(),
		"",
	)
	switch {
	case m.submitting:
		lines = append(lines, muted.Render("Signing in..."))
	case m.err != "":
		lines = append(lines, m.theme.Banner.Render(m.err))
	}
	lines = append(lines, muted.Render("tab switch field · enter sign in · ctrl+c quit"))

	return m.theme.RoundedBox.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
