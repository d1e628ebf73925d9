// Package cli provides styled terminal output and prompts for the edviron
// commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// Colors shared by every command, one per badge class plus the brand color.
var (
	PrimaryColor = lipgloss.Color("#6366F1")
	SuccessColor = lipgloss.Color("#22C55E")
	WarningColor = lipgloss.Color("#EAB308")
	ErrorColor   = lipgloss.Color("#EF4444")
	InfoColor    = lipgloss.Color("#3B82F6")
	SubtleColor  = lipgloss.Color("#6B7280")
)

var (
	// ErrorStyle colors inline error text, such as a gateway failure reason.
	ErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	// SubtleStyle is used for labels, hints and table borders.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	promptStyle      = titleStyle
	boxStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(SubtleColor).Padding(0, 2)
	tableHeaderStyle = titleStyle.PaddingRight(2)
	tableCellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// badgeColors maps format badge classes to foreground colors.
var badgeColors = map[string]lipgloss.Color{
	"info":    InfoColor,
	"warning": WarningColor,
	"success": SuccessColor,
	"error":   ErrorColor,
	"muted":   SubtleColor,
}

func line(color lipgloss.Color, icon, message string) string {
	return lipgloss.NewStyle().Foreground(color).Render(icon + " " + message)
}

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string { return line(SuccessColor, "✓", message) }

// FormatError prefixes message with a cross.
func FormatError(message string) string { return line(ErrorColor, "✗", message) }

// FormatWarning prefixes message with "!".
func FormatWarning(message string) string { return line(WarningColor, "!", message) }

// FormatInfo prefixes message with "i".
func FormatInfo(message string) string { return line(InfoColor, "i", message) }

// FormatTitle renders a section heading followed by a blank line.
func FormatTitle(title string) string {
	return titleStyle.MarginBottom(1).Render("₹ " + title)
}

// FormatPrompt renders "label: " for an interactive question.
func FormatPrompt(label string) string {
	return promptStyle.Render(label + ": ")
}

// FormatStatus renders a transaction status with its badge label and color.
// Unknown statuses take the created presentation.
func FormatStatus(status model.Status) string {
	b := format.BadgeFor(status)
	return lipgloss.NewStyle().Bold(true).Foreground(badgeColors[b.Class]).Render(b.Label)
}

// RenderBox frames content under a title.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content))
}

// KeyValues renders aligned "label  value" lines.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}

	label := SubtleStyle.Width(width + 2)
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, label.Render(p[0])+p[1])
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
