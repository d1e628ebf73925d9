package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// TransactionDetailModel represents the transaction detail view.
type TransactionDetailModel struct {
	theme       themes.Theme
	transaction model.Transaction
	width       int
	focused     bool
}

type detailKeyMap struct {
	Back key.Binding
}

var detailKeys = detailKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "b"),
		key.WithHelp("esc/b", "back to list"),
	),
}

// NewTransactionDetailModel creates a new transaction detail model.
func NewTransactionDetailModel(theme themes.Theme) TransactionDetailModel {
	return TransactionDetailModel{
		theme:   theme,
		focused: true,
		width:   80,
	}
}

// SetTransaction sets the record to show.
func (m *TransactionDetailModel) SetTransaction(txn model.Transaction) {
	m.transaction = txn
}

// Transaction returns the record shown.
func (m TransactionDetailModel) Transaction() model.Transaction {
	return m.transaction
}

// Update handles messages.
func (m TransactionDetailModel) Update(msg tea.Msg) (TransactionDetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.focused && key.Matches(msg, detailKeys.Back) {
		return m, func() tea.Msg {
			return BackToListMsg{}
		}
	}
	return m, nil
}

// Field is one labelled line of the detail card.
type Field struct {
	Label string
	Value string
}

// Fields lists the detail card lines in display order.
func (m TransactionDetailModel) Fields() []Field {
	t := m.transaction
	paid := format.Dash
	if t.HasPaidAmount() {
		paid = format.CurrencyINRPtr(t.TransactionAmount)
	}

	fields := []Field{
		{"Order ID", format.OrDash(t.CustomOrderID)},
		{"Collect ID", format.OrDash(t.CollectID)},
		{"Status", format.BadgeFor(t.Status).Label},
		{"Student", format.OrDash(t.StudentInfo.Name)},
		{"Student Email", format.OrDash(t.StudentInfo.Email)},
		{"Student ID", format.OrDash(t.StudentInfo.ID)},
		{"School ID", format.OrDash(t.SchoolID)},
		{"Gateway", format.OrDash(t.Gateway)},
		{"Order Amount", format.CurrencyINR(t.OrderAmount)},
		{"Paid Amount", paid},
		{"Payment Mode", format.OrDash(t.PaymentMode)},
		{"Bank Reference", format.OrDash(t.BankReference)},
		{"Payment Time", format.LongDateTime(t.PaymentTime)},
		{"Created At", format.LongDateTime(t.CreatedAt)},
	}
	if t.ErrorMessage != "" {
		fields = append(fields, Field{"Error", t.ErrorMessage})
	}
	return fields
}

// View renders the transaction detail card.
func (m TransactionDetailModel) View() string {
	labelStyle := m.theme.Bold.
		Width(16).
		Align(lipgloss.Right)

	valueStyle := m.theme.Normal
	badge := format.BadgeFor(m.transaction.Status)

	lines := make([]string, 0, 16)
	for _, f := range m.Fields() {
		value := valueStyle.Render(f.Value)
		switch f.Label {
		case "Status":
			value = m.theme.Badge(badge.Class).Render(f.Value)
		case "Error":
			value = m.theme.StatusError.Render(f.Value)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(f.Label+": "),
			value,
		))
	}

	card := m.theme.RoundedBox.
		Width(max(50, min(m.width-4, 90))).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Title.Render("Transaction Details"),
			strings.Join(lines, "\n"),
		))

	if !m.focused {
		return card
	}
	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press esc or b to return to the list")
	return lipgloss.JoinVertical(lipgloss.Left, card, hint)
}

// SetFocused sets the focus state.
func (m TransactionDetailModel) SetFocused(focused bool) TransactionDetailModel {
	m.focused = focused
	return m
}

// Focused returns the focus state.
func (m TransactionDetailModel) Focused() bool {
	return m.focused
}

// Resize updates the component dimensions.
func (m *TransactionDetailModel) Resize(width int) {
	m.width = width
}
