package tui

import (
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// Fallback texts shown after a render or update failure.
const (
	CrashMessage = "Something went wrong."
	CrashHint    = "Press d to show details, q to quit"
)

type crash struct {
	value    any
	stack    []byte
	expanded bool
}

// guard catches panics raised while updating or rendering the wrapped model
// and replaces the screen with a fallback.
type guard struct {
	inner  tea.Model
	crash  *crash
	logger *zap.Logger
	theme  themes.Theme
}

func newGuard(inner Model) guard {
	return guard{
		inner:  inner,
		crash:  &crash{},
		logger: zap.L().Named("tui"),
		theme:  inner.theme,
	}
}

func (g guard) Init() tea.Cmd {
	return g.inner.Init()
}

func (g guard) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	if g.crashed() {
		return g.updateFallback(msg)
	}

	defer func() {
		if r := recover(); r != nil {
			g.record(r)
			model, cmd = g, nil
		}
	}()

	g.inner, cmd = g.inner.Update(msg)
	return g, cmd
}

func (g guard) View() (view string) {
	if g.crashed() {
		return g.renderFallback()
	}

	defer func() {
		if r := recover(); r != nil {
			g.record(r)
			view = g.renderFallback()
		}
	}()

	return g.inner.View()
}

func (g guard) crashed() bool {
	return g.crash.stack != nil
}

// record keeps the first failure. The crash is shared by copies of the guard,
// so a panic during View is seen by the next Update.
func (g guard) record(r any) {
	if g.crashed() {
		return
	}
	g.crash.value = r
	g.crash.stack = debug.Stack()
	g.logger.Error("dashboard crashed",
		zap.Any("panic", r),
		zap.ByteString("stack", g.crash.stack))
}

func (g guard) updateFallback(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return g, tea.Quit
	case "d":
		g.crash.expanded = !g.crash.expanded
	}
	return g, nil
}

func (g guard) renderFallback() string {
	parts := []string{
		g.theme.StatusError.Render(CrashMessage),
		"",
		lipgloss.NewStyle().Foreground(g.theme.Muted).Render(CrashHint),
	}
	if g.crash.expanded {
		parts = append(parts,
			"",
			g.theme.Bold.Render(fmt.Sprint(g.crash.value)),
			g.theme.Code.Render(string(g.crash.stack)),
		)
	}
	return g.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
