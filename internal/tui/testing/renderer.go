// Package testing provides test utilities for TUI components.
package testing

import (
	"reflect"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// commandTimeout bounds how long Drain waits on a single command. Cursor
// blinks and other timers never finish in time and are dropped.
const commandTimeout = 200 * time.Millisecond

// maxDrainSteps stops runaway command chains.
const maxDrainSteps = 64

// TestRenderer captures the output of a Bubble Tea component without requiring a real terminal.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Messages contains all messages sent to the component
	Messages []tea.Msg

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{
		Messages: make([]tea.Msg, 0),
	}
}

// Render renders a component and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the component and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)
	r.UpdateCount++

	newModel, cmd := model.Update(msg)
	r.Output = newModel.View()
	return newModel, cmd
}

// Send delivers msg and then drains every command it produces.
func (r *TestRenderer) Send(model tea.Model, msg tea.Msg) tea.Model {
	model, cmd := r.Update(model, msg)
	return r.Drain(model, cmd)
}

// Drain runs cmd and feeds the resulting messages back into model until no
// commands remain. Batches are expanded. Messages owned by the bubbles
// widgets, such as spinner ticks and cursor blinks, are discarded.
func (r *TestRenderer) Drain(model tea.Model, cmd tea.Cmd) tea.Model {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < maxDrainSteps; steps++ {
		next := queue[0]
		queue = queue[1:]

		msg, ok := run(next)
		if !ok {
			continue
		}

		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case tea.QuitMsg:
			continue
		}

		if widgetMessage(msg) {
			continue
		}

		var follow tea.Cmd
		model, follow = r.Update(model, msg)
		queue = append(queue, follow)
	}
	return model
}

// Collect runs cmd and returns its messages with batches expanded, without
// updating any model.
func Collect(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		msg, ok := run(next)
		if !ok {
			continue
		}
		if batch, isBatch := msg.(tea.BatchMsg); isBatch {
			queue = append(queue, batch...)
			continue
		}
		out = append(out, msg)
	}
	return out
}

func run(cmd tea.Cmd) (tea.Msg, bool) {
	if cmd == nil {
		return nil, false
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		return msg, msg != nil
	case <-time.After(commandTimeout):
		return nil, false
	}
}

func widgetMessage(msg tea.Msg) bool {
	t := reflect.TypeOf(msg)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.HasPrefix(t.PkgPath(), "github.com/charmbracelet/bubbles/")
}

// StripANSI removes ANSI escape codes from the output for content-only testing.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Reset clears all captured data.
func (r *TestRenderer) Reset() {
	r.Output = ""
	r.Messages = nil
	r.UpdateCount = 0
}
