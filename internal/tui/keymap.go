package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Select   key.Binding
	Back     key.Binding

	// Listing
	Filter      key.Binding
	CycleStatus key.Binding
	CycleSort   key.Binding
	Reverse     key.Binding
	PageSize    key.Binding
	Clear       key.Binding
	OpenSchool  key.Binding
	Edit        key.Binding
	Refresh     key.Binding

	// Routes
	Overview  key.Binding
	Schools   key.Binding
	Status    key.Binding
	Dashboard key.Binding

	// Application
	Logout    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "back"),
		),

		// Listing
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle status"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort column"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reverse order"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "page size"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		OpenSchool: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "open school"),
		),
		Edit: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "edit input"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),

		// Routes
		Overview: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "overview"),
		),
		Schools: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "by school"),
		),
		Status: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "status check"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "dashboard"),
		),

		// Application
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.PrevPage, k.NextPage, k.Select, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Select, k.Back},
		{k.Filter, k.CycleStatus, k.CycleSort, k.Reverse, k.PageSize, k.Clear},
		{k.OpenSchool, k.Edit, k.Refresh},
		{k.Overview, k.Schools, k.Status, k.Dashboard},
		{k.Logout, k.Help, k.Quit, k.ForceQuit},
	}
}
