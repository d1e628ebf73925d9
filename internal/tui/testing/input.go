package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// KeyPress returns the message for typing key as runes, e.g. "n" or "/".
func KeyPress(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// Named keys used by the dashboard key map.
func KeyDown() tea.KeyMsg { return key(tea.KeyDown) }
func KeyLeft() tea.KeyMsg { return key(tea.KeyLeft) }
func KeyRight() tea.KeyMsg { return key(tea.KeyRight) }
func KeyEnter() tea.KeyMsg { return key(tea.KeyEnter) }
func KeyEsc() tea.KeyMsg { return key(tea.KeyEsc) }
func KeyTab() tea.KeyMsg { return key(tea.KeyTab) }
func KeyCtrlC() tea.KeyMsg { return key(tea.KeyCtrlC) }

// WindowSize resizes the terminal.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}

// Type returns one key message per character of text, the way a user
// filling a form field would send them.
func Type(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, KeyPress(string(r)))
	}
	return msgs
}
