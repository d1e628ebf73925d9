package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	tuitest "github.com/thisispriyanshii/edviron-frontend/internal/tui/testing"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

func sampleStats() model.Stats {
	return model.Stats{
		TotalOrders: 10,
		TotalAmount: decimal.RequireFromString("125000"),
		StatusStats: []model.StatusCount{
			{Status: model.StatusSuccess, Count: 7},
			{Status: model.StatusFailed, Count: 2},
			{Status: model.StatusCreated, Count: 1},
		},
	}
}

func TestNewStatsPanelModel(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)

	assert.False(t, m.Loading())
	for _, card := range m.Cards() {
		assert.Equal(t, "-", card.Value, card.Label)
	}
}

func TestStatsPanelModel_Cards(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.SetLoading()
	assert.True(t, m.Loading())

	m.SetStats(sampleStats())
	assert.False(t, m.Loading())

	cards := m.Cards()
	require.Len(t, cards, 4)
	assert.Equal(t, Card{Label: "Total Orders", Value: "10"}, cards[0])
	assert.Equal(t, Card{Label: "Total Amount", Value: "₹1,25,000.00"}, cards[1])
	assert.Equal(t, Card{Label: "Successful", Value: "7"}, cards[2])
	assert.Equal(t, Card{Label: "Failed", Value: "2"}, cards[3])
}

func TestStatsPanelModel_MissingStatusCountsZero(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.SetStats(model.Stats{
		TotalOrders: 3,
		StatusStats: []model.StatusCount{{Status: model.StatusPending, Count: 3}},
	})

	cards := m.Cards()
	assert.Equal(t, "0", cards[2].Value)
	assert.Equal(t, "0", cards[3].Value)
}

func TestStatsPanelModel_View(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m *StatsPanelModel)
		contains  []string
		forbidden []string
	}{
		{
			name:     "not loaded",
			setup:    func(_ *StatsPanelModel) {},
			contains: []string{"Total Orders", "Total Amount", "Successful", "Failed"},
		},
		{
			name:      "loaded",
			setup:     func(m *StatsPanelModel) { m.SetStats(sampleStats()) },
			contains:  []string{"₹1,25,000.00", "7", "2"},
			forbidden: []string{StatsUnavailableMessage},
		},
		{
			name:      "failed before any load",
			setup:     func(m *StatsPanelModel) { m.SetError("Failed to fetch statistics") },
			contains:  []string{StatsUnavailableMessage, "Failed to fetch statistics"},
			forbidden: []string{"Total Orders"},
		},
		{
			name: "failed refresh keeps figures",
			setup: func(m *StatsPanelModel) {
				m.SetStats(sampleStats())
				m.SetLoading()
				m.SetError("Failed to fetch statistics")
			},
			contains:  []string{"₹1,25,000.00", "Failed to fetch statistics"},
			forbidden: []string{StatsUnavailableMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStatsPanelModel(themes.Default)
			m.Resize(120)
			tt.setup(&m)

			view := tuitest.StripANSI(m.View())
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
			for _, unwanted := range tt.forbidden {
				assert.NotContains(t, view, unwanted)
			}
		})
	}
}

func TestStatsPanelModel_ChartView(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	assert.Contains(t, tuitest.StripANSI(m.ChartView(20)), "No data")

	m.SetStats(sampleStats())
	chart := tuitest.StripANSI(m.ChartView(20))

	assert.True(t, tuitest.ContainsInOrder(chart,
		"Status Distribution", "Created", "Pending", "Success", "Failed", "Cancelled"))

	lines := strings.Split(chart, "\n")
	var success, pending string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "Success"):
			success = line
		case strings.HasPrefix(line, "Pending"):
			pending = line
		}
	}
	require.NotEmpty(t, success)
	require.NotEmpty(t, pending)
	assert.Equal(t, 20, strings.Count(success, "█"), "peak status fills the bar")
	assert.Equal(t, 0, strings.Count(pending, "█"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(pending), "0"))
}
