package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	tuitest "github.com/thisispriyanshii/edviron-frontend/internal/tui/testing"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

func createTestTransactions(count int) []model.Transaction {
	txns := make([]model.Transaction, count)
	for i := range txns {
		paid := decimal.NewFromInt(int64(1000 + i))
		txns[i] = model.Transaction{
			CollectID:         fmt.Sprintf("col-%d", i),
			CustomOrderID:     fmt.Sprintf("ORD-%03d", i),
			SchoolID:          "SCH001",
			Status:            model.StatusSuccess,
			StudentInfo:       model.StudentInfo{Name: fmt.Sprintf("Student %d", i), ID: fmt.Sprintf("S%d", i)},
			OrderAmount:       decimal.NewFromInt(int64(1000 + i)),
			TransactionAmount: &paid,
			PaymentMode:       "upi",
			CreatedAt:         "2024-01-15T10:30:00Z",
		}
	}
	return txns
}

func TestTransactionList_Modes(t *testing.T) {
	m := NewTransactionList(themes.Default)
	m.Resize(140, 20)

	assert.Equal(t, ModeLoading, m.Mode())
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, LoadingMessage)
	assert.NotContains(t, view, EmptyMessage)

	m.SetTransactions([]model.Transaction{})
	assert.Equal(t, ModeEmpty, m.Mode())
	view = tuitest.StripANSI(m.View())
	assert.Contains(t, view, EmptyMessage)
	assert.Contains(t, view, EmptyHintMessage)
	assert.NotContains(t, view, LoadingMessage)

	m.SetTransactions(createTestTransactions(3))
	assert.Equal(t, ModePopulated, m.Mode())
	view = tuitest.StripANSI(m.View())
	assert.Contains(t, view, "ORD-000")
	assert.Contains(t, view, "Student 2")
	assert.Contains(t, view, "₹1,001.00")
	assert.NotContains(t, view, LoadingMessage)
	assert.NotContains(t, view, EmptyMessage)

	m.SetLoading()
	assert.Equal(t, ModeLoading, m.Mode())
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestTransactionList_SortIndicator(t *testing.T) {
	m := NewTransactionList(themes.Default)
	m.Resize(160, 20)
	m.SetTransactions(createTestTransactions(1))

	m.SetSort("order_amount", true)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Amount ▲")

	m.SetSort("created_at", false)
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Created ▼")
	assert.NotContains(t, view, "Amount ▲")
}

func TestTransactionList_Select(t *testing.T) {
	m := NewTransactionList(themes.Default)
	m.Resize(140, 20)
	m.SetTransactions(createTestTransactions(3))

	m, _ = m.Update(tuitest.KeyDown())
	txn, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "ORD-001", txn.CustomOrderID)

	_, cmd := m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	msg, ok := cmd().(TransactionSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "ORD-001", msg.Transaction.CustomOrderID)
	assert.Equal(t, 1, msg.Index)
}

func TestTransactionList_IgnoresKeysWithoutRows(t *testing.T) {
	m := NewTransactionList(themes.Default)

	_, cmd := m.Update(tuitest.KeyEnter())
	assert.Nil(t, cmd)

	m.SetTransactions(nil)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestTransactionList_MissingPaidAmount(t *testing.T) {
	m := NewTransactionList(themes.Default)
	m.Resize(140, 20)

	txn := createTestTransactions(1)[0]
	txn.TransactionAmount = nil
	txn.PaymentMode = ""
	m.SetTransactions([]model.Transaction{txn})

	row := m.buildRows()[0]
	assert.Equal(t, "-", row[4])
	assert.Equal(t, "-", row[6])
	assert.Equal(t, "Success", row[5])
}
