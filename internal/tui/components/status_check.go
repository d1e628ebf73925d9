package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// StatusCheckModel looks up one order by its id.
type StatusCheckModel struct {
	theme   themes.Theme
	result  *model.Transaction
	err     string
	orderID string
	input   textinput.Model
	detail  TransactionDetailModel
	loading bool
}

// NewStatusCheck creates the lookup form.
func NewStatusCheck(theme themes.Theme) StatusCheckModel {
	in := textinput.New()
	in.Placeholder = "Enter order ID (e.g., ORDER_001)"
	in.CharLimit = 64
	in.Width = 40

	return StatusCheckModel{
		theme:  theme,
		input:  in,
		detail: NewTransactionDetailModel(theme).SetFocused(false),
	}
}

// Focus puts the cursor in the order id input.
func (m *StatusCheckModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur releases the input.
func (m *StatusCheckModel) Blur() {
	m.input.Blur()
}

// Focused reports whether keys go to the input.
func (m StatusCheckModel) Focused() bool {
	return m.input.Focused()
}

// SetLoading marks a lookup of orderID in flight and clears the last outcome.
func (m *StatusCheckModel) SetLoading(orderID string) {
	m.orderID = orderID
	m.loading = true
	m.result = nil
	m.err = ""
}

// SetResult shows a found record.
func (m *StatusCheckModel) SetResult(txn model.Transaction) {
	m.loading = false
	m.result = &txn
	m.err = ""
	m.detail.SetTransaction(txn)
}

// SetError shows a failed lookup.
func (m *StatusCheckModel) SetError(message string) {
	m.loading = false
	m.result = nil
	m.err = message
}

// Loading reports whether a lookup is in flight.
func (m StatusCheckModel) Loading() bool {
	return m.loading
}

// Update handles messages.
func (m StatusCheckModel) Update(msg tea.Msg) (StatusCheckModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.input.Focused() {
		switch msg.String() {
		case "enter":
			orderID := strings.TrimSpace(m.input.Value())
			if orderID == "" {
				return m, nil
			}
			return m, func() tea.Msg { return StatusLookupMsg{OrderID: orderID} }
		case "esc":
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Resize updates the component size.
func (m *StatusCheckModel) Resize(width int) {
	m.detail.Resize(width)
}

// View renders the form and the outcome of the last lookup.
func (m StatusCheckModel) View() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	sections := []string{
		m.theme.Title.Render("Transaction Status Check"),
		muted.Render("Enter an order ID to check the transaction status"),
		lipgloss.JoinHorizontal(lipgloss.Top, m.theme.Bold.Render("Order ID "), m.input.View()),
		"",
	}

	switch {
	case m.loading:
		sections = append(sections, muted.Render("Checking "+m.orderID+"..."))
	case m.err != "":
		sections = append(sections, m.theme.Banner.Render(m.err))
	case m.result != nil:
		sections = append(sections, m.detail.View())
	}

	hint := "enter search · esc leave input"
	if !m.input.Focused() {
		hint = "/ edit order id"
	}
	sections = append(sections, muted.Render(hint))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
