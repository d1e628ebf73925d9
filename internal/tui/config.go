package tui

import (
	"context"
	"time"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	"github.com/thisispriyanshii/edviron-frontend/internal/session"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// Session is what the dashboard needs from the credential holder.
type Session interface {
	State() session.State
	User() (model.User, bool)
	Restore(ctx context.Context) error
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
	Logout() error
	Invalidate()
}

// Config holds TUI configuration. Timeout bounds every request the dashboard makes.
type Config struct {
	Theme    themes.Theme
	Querier  api.Querier
	Session  Session
	Location string
	Width    int
	Height   int
	Timeout  time.Duration
	ShowHelp bool
	Demo     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Width:    120,
		Height:   36,
		Timeout:  30 * time.Second,
		Location: overviewPath,
	}
}

// WithQuerier sets the transaction backend.
func WithQuerier(q api.Querier) Option {
	return func(c *Config) {
		c.Querier = q
	}
}

// WithSession sets the credential holder.
func WithSession(s Session) Option {
	return func(c *Config) {
		c.Session = s
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithLocation opens the dashboard at a location such as
// "/transactions?status=success" or "/transactions/school/SCH001".
func WithLocation(location string) Option {
	return func(c *Config) {
		if location != "" {
			c.Location = location
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithDemo marks the dashboard as running against the in-memory backend.
func WithDemo(enabled bool) Option {
	return func(c *Config) {
		c.Demo = enabled
	}
}

// WithHelp starts with the full key help expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
