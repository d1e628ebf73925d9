package components

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// Messages rendered by the list in place of rows.
const (
	LoadingMessage   = "Loading transactions..."
	EmptyMessage     = "No transactions found"
	EmptyHintMessage = "Try adjusting your filters"
)

// ListMode is what the list currently shows. Exactly one mode renders.
type ListMode int

// List modes.
const (
	ModeLoading ListMode = iota
	ModeEmpty
	ModePopulated
)

// TransactionListModel manages the transaction table.
type TransactionListModel struct {
	theme        themes.Theme
	transactions []model.Transaction
	table        table.Model
	sort         SortConfig
	mode         ListMode
	width        int
	height       int
}

// SortConfig mirrors the active sort so the header can mark it.
type SortConfig struct {
	Field     string
	Ascending bool
}

// column binds a header to the sort field it orders by, if any.
type column struct {
	title string
	field string
	share float64
	min   int
}

var columns = []column{
	{title: "Order ID", field: "custom_order_id", share: 0.17, min: 12},
	{title: "Student", field: "student_info.name", share: 0.17, min: 12},
	{title: "School", share: 0.14, min: 10},
	{title: "Amount", field: "order_amount", share: 0.12, min: 11},
	{title: "Paid", share: 0.12, min: 11},
	{title: "Status", field: "status", share: 0.09, min: 9},
	{title: "Mode", share: 0.07, min: 6},
	{title: "Created", field: "created_at", share: 0.12, min: 17},
}

// NewTransactionList creates a list in the loading mode.
func NewTransactionList(theme themes.Theme) TransactionListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := TransactionListModel{
		table:  t,
		mode:   ModeLoading,
		theme:  theme,
		width:  100,
		height: 14,
	}
	m.updateColumns()
	return m
}

// SetLoading switches to the loading mode and drops the rows.
func (m *TransactionListModel) SetLoading() {
	m.mode = ModeLoading
	m.transactions = nil
	m.table.SetRows(nil)
}

// SetTransactions shows records, or the empty mode when there are none.
func (m *TransactionListModel) SetTransactions(txns []model.Transaction) {
	m.transactions = txns
	if len(txns) == 0 {
		m.mode = ModeEmpty
		m.table.SetRows(nil)
		return
	}
	m.mode = ModePopulated
	m.table.SetRows(m.buildRows())
	m.table.SetCursor(0)
}

// SetSort marks the sorted column in the header.
func (m *TransactionListModel) SetSort(field string, ascending bool) {
	m.sort = SortConfig{Field: field, Ascending: ascending}
	m.updateColumns()
}

// Mode returns what the list is showing.
func (m TransactionListModel) Mode() ListMode {
	return m.mode
}

// Selected returns the row under the cursor.
func (m TransactionListModel) Selected() (model.Transaction, bool) {
	if m.mode != ModePopulated {
		return model.Transaction{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.transactions) {
		return model.Transaction{}, false
	}
	return m.transactions[i], true
}

// Update handles row navigation and selection.
func (m TransactionListModel) Update(msg tea.Msg) (TransactionListModel, tea.Cmd) {
	if m.mode != ModePopulated {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if txn, ok := m.Selected(); ok {
			index := m.table.Cursor()
			return m, func() tea.Msg {
				return TransactionSelectedMsg{Transaction: txn, Index: index}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders exactly one of the loading, empty or populated modes.
func (m TransactionListModel) View() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	switch m.mode {
	case ModeLoading:
		return m.placeholder(muted.Render(LoadingMessage))
	case ModeEmpty:
		return m.placeholder(lipgloss.JoinVertical(
			lipgloss.Center,
			m.theme.Bold.Render(EmptyMessage),
			muted.Render(EmptyHintMessage),
		))
	default:
		return m.table.View()
	}
}

func (m TransactionListModel) placeholder(content string) string {
	return lipgloss.Place(max(m.width, 40), max(m.height/2, 3), lipgloss.Center, lipgloss.Center, content)
}

func (m TransactionListModel) buildRows() []table.Row {
	rows := make([]table.Row, 0, len(m.transactions))
	for _, txn := range m.transactions {
		paid := format.Dash
		if txn.HasPaidAmount() {
			paid = format.CurrencyINRPtr(txn.TransactionAmount)
		}
		rows = append(rows, table.Row{
			format.OrDash(txn.CustomOrderID),
			format.OrDash(txn.StudentInfo.Name),
			format.OrDash(txn.SchoolID),
			format.CurrencyINR(txn.OrderAmount),
			paid,
			format.BadgeFor(txn.Status).Label,
			format.OrDash(txn.PaymentMode),
			format.DateTime(txn.CreatedAt),
		})
	}
	return rows
}

// Resize updates the component size.
func (m *TransactionListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(3, height-2))
	m.updateColumns()
}

// updateColumns spreads the available width over the columns.
func (m *TransactionListModel) updateColumns() {
	available := max(m.width-len(columns)*2, 90)

	cols := make([]table.Column, 0, len(columns))
	for _, c := range columns {
		title := c.title
		if c.field != "" && c.field == m.sort.Field {
			if m.sort.Ascending {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		cols = append(cols, table.Column{
			Title: title,
			Width: max(c.min, int(float64(available)*c.share)),
		})
	}
	m.table.SetColumns(cols)
	if m.mode == ModePopulated {
		m.table.SetRows(m.buildRows())
	}
}
