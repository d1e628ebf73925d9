package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	tuitest "github.com/thisispriyanshii/edviron-frontend/internal/tui/testing"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

func typeInto[M interface{ Update(tea.Msg) (M, tea.Cmd) }](m M, text string) M {
	for _, msg := range tuitest.Type(text) {
		m, _ = m.Update(msg)
	}
	return m
}

func TestFilterForm_OpenAndSubmit(t *testing.T) {
	m := NewFilterForm(themes.Default, false)
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())

	s := filter.Default()
	s.Status = "pending"
	s.SchoolID = "SCH001"
	m.Open(s)
	require.True(t, m.Visible())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Filter Transactions")

	p := m.Patch()
	require.NotNil(t, p.Status)
	require.NotNil(t, p.SchoolID)
	assert.Equal(t, "pending", *p.Status)
	assert.Equal(t, "SCH001", *p.SchoolID)
	assert.Equal(t, "", *p.StartDate)

	_, cmd := m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	submitted, ok := cmd().(FilterSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "pending", *submitted.Patch.Status)
}

func TestFilterForm_TypedValuesAreNormalized(t *testing.T) {
	m := NewFilterForm(themes.Default, false)
	m.Open(filter.Default())

	m = typeInto(m, " SUCCESS ")
	m, _ = m.Update(tuitest.KeyTab())
	m, _ = m.Update(tuitest.KeyTab())
	m = typeInto(m, "2024-01-01")

	p := m.Patch()
	assert.Equal(t, "success", *p.Status)
	assert.Equal(t, "2024-01-01", *p.StartDate)
	assert.Equal(t, "", *p.SchoolID)
}

func TestFilterForm_ScopedSkipsSchool(t *testing.T) {
	m := NewFilterForm(themes.Default, true)
	m.Open(filter.Default())

	m, _ = m.Update(tuitest.KeyTab())
	m = typeInto(m, "2024-02-01")

	p := m.Patch()
	assert.Nil(t, p.SchoolID)
	assert.Equal(t, "2024-02-01", *p.StartDate)
	assert.NotContains(t, tuitest.StripANSI(m.View()), "School ID")
}

func TestFilterForm_CancelAndError(t *testing.T) {
	m := NewFilterForm(themes.Default, false)
	m.Open(filter.Default())
	m.SetError("start date must not be after end date")
	assert.Contains(t, tuitest.StripANSI(m.View()), "start date must not be after end date")

	m, cmd := m.Update(tuitest.KeyEsc())
	require.NotNil(t, cmd)
	assert.Equal(t, FilterCancelledMsg{}, cmd())
	assert.False(t, m.Visible())

	m.Open(filter.Default())
	assert.NotContains(t, tuitest.StripANSI(m.View()), "start date must not be after end date")
}

func TestStatusCheck_Lookup(t *testing.T) {
	m := NewStatusCheck(themes.Default)
	m.Focus()

	_, cmd := m.Update(tuitest.KeyEnter())
	assert.Nil(t, cmd, "blank order id is not submitted")

	m = typeInto(m, " ORD-001 ")
	_, cmd = m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	assert.Equal(t, StatusLookupMsg{OrderID: "ORD-001"}, cmd())

	m.SetLoading("ORD-001")
	assert.True(t, m.Loading())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Checking ORD-001...")

	m.SetResult(createTestTransactions(1)[0])
	assert.False(t, m.Loading())
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Transaction Details")
	assert.Contains(t, view, "ORD-000")
	assert.NotContains(t, view, "Checking")

	m.SetError("Transaction not found")
	view = tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Transaction not found")
	assert.NotContains(t, view, "Transaction Details")
}

func TestStatusCheck_EscBlurs(t *testing.T) {
	m := NewStatusCheck(themes.Default)
	m.Focus()
	require.True(t, m.Focused())

	m, _ = m.Update(tuitest.KeyEsc())
	assert.False(t, m.Focused())
}

func TestSchoolPicker_Submit(t *testing.T) {
	m := NewSchoolPicker(themes.Default)
	m.Focus()

	m = typeInto(m, "SCH002")
	m, cmd := m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	assert.Equal(t, SchoolSubmittedMsg{SchoolID: "SCH002"}, cmd())
	assert.False(t, m.Focused())
}

func TestLoginForm_Submit(t *testing.T) {
	m := NewLoginForm(themes.Default)
	m.Focus()

	m = typeInto(m, "admin@school.edu")
	m, cmd := m.Update(tuitest.KeyEnter())
	assert.False(t, m.Submitting(), "enter on the email field moves to the password")
	assert.NotNil(t, cmd)

	m = typeInto(m, "secret123")
	assert.NotContains(t, tuitest.StripANSI(m.View()), "secret123")

	m, cmd = m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	assert.True(t, m.Submitting())
	assert.Equal(t, LoginSubmittedMsg{Credentials: model.Credentials{
		Email:    "admin@school.edu",
		Password: "secret123",
	}}, cmd())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Signing in...")

	_, cmd = m.Update(tuitest.KeyEnter())
	assert.Nil(t, cmd, "no second submission while one is in flight")

	m.SetError("Invalid credentials")
	assert.False(t, m.Submitting())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Invalid credentials")
}

func TestLoginForm_Notice(t *testing.T) {
	m := NewLoginForm(themes.Default)
	m.SetNotice("Session expired. Please sign in again.")
	assert.Equal(t, "Session expired. Please sign in again.", m.Notice())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Session expired")

	m.Reset()
	assert.Empty(t, m.Notice())
}
