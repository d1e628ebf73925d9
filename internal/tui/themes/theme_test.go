package themes

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("default").Primary)
	assert.Equal(t, Default.Primary, GetTheme("unknown").Primary)
}

func TestBadge(t *testing.T) {
	theme := Default
	tests := []struct {
		class string
		want  lipgloss.Style
	}{
		{"success", theme.StatusSuccess},
		{"warning", theme.StatusWarning},
		{"error", theme.StatusError},
		{"muted", theme.StatusMuted},
		{"info", theme.StatusInfo},
		{"", theme.StatusInfo},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want.GetForeground(), theme.Badge(tt.class).GetForeground())
		})
	}
}
