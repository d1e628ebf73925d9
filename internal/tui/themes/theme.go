// Package themes holds the dashboard color schemes.
package themes

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is derived from.
type Palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	Subtext   lipgloss.Color
	Surface   lipgloss.Color
	OnPrimary lipgloss.Color
	Border    lipgloss.Color
	Muted     lipgloss.Color
	Info      lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Code          lipgloss.Style
	Selected      lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	Card          lipgloss.Style
	Banner        lipgloss.Style
	ProgressEmpty lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusMuted   lipgloss.Style
	Primary       lipgloss.Color
	Border        lipgloss.Color
	Muted         lipgloss.Color
}

// New derives every style of a theme from p.
func New(p Palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	framed := func(b lipgloss.Border) lipgloss.Style {
		return lipgloss.NewStyle().Border(b).BorderForeground(p.Border)
	}

	return Theme{
		Primary: p.Primary,
		Border:  p.Border,
		Muted:   p.Muted,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Text).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.Subtext).MarginBottom(1),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Code:     lipgloss.NewStyle().Background(p.Surface).Foreground(p.Text).Padding(0, 1),
		Selected: lipgloss.NewStyle().Background(p.Primary).Foreground(p.OnPrimary).Bold(true),

		Box:         lipgloss.NewStyle().Padding(1, 2),
		BorderedBox: framed(lipgloss.NormalBorder()).Padding(1, 2),
		RoundedBox:  framed(lipgloss.RoundedBorder()).Padding(1, 2),
		Card:        framed(lipgloss.RoundedBorder()).Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Error).
			Foreground(p.Error).
			PaddingLeft(1),
		ProgressEmpty: lipgloss.NewStyle().Foreground(p.Border),

		StatusSuccess: status(p.Success),
		StatusWarning: status(p.Warning),
		StatusError:   status(p.Error),
		StatusInfo:    status(p.Info),
		StatusMuted:   lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
	}
}

// Default is the default theme.
var Default = New(Palette{
	Primary:   lipgloss.Color("#7c3aed"),
	Text:      lipgloss.Color("#fafafa"),
	Subtext:   lipgloss.Color("#a3a3a3"),
	Surface:   lipgloss.Color("#262626"),
	OnPrimary: lipgloss.Color("#fafafa"),
	Border:    lipgloss.Color("#404040"),
	Muted:     lipgloss.Color("#737373"),
	Info:      lipgloss.Color("#3b82f6"),
	Success:   lipgloss.Color("#10b981"),
	Warning:   lipgloss.Color("#f59e0b"),
	Error:     lipgloss.Color("#ef4444"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = New(Palette{
	Primary:   lipgloss.Color("#cba6f7"),
	Text:      lipgloss.Color("#cdd6f4"),
	Subtext:   lipgloss.Color("#a6adc8"),
	Surface:   lipgloss.Color("#313244"),
	OnPrimary: lipgloss.Color("#1e1e2e"),
	Border:    lipgloss.Color("#45475a"),
	Muted:     lipgloss.Color("#6c7086"),
	Info:      lipgloss.Color("#89dceb"),
	Success:   lipgloss.Color("#a6e3a1"),
	Warning:   lipgloss.Color("#f9e2af"),
	Error:     lipgloss.Color("#f38ba8"),
})

// Badge returns the style for a status badge class.
func (t Theme) Badge(class string) lipgloss.Style {
	switch class {
	case "success":
		return t.StatusSuccess
	case "warning":
		return t.StatusWarning
	case "error":
		return t.StatusError
	case "muted":
		return t.StatusMuted
	default:
		return t.StatusInfo
	}
}

// GetTheme returns a theme by its ui.theme name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
