package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thisispriyanshii/edviron-frontend/internal/common"
)

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Querier == nil {
		return errNoQuerier
	}
	if cfg.Session == nil {
		return fmt.Errorf("%w: session not configured", common.ErrMissingConfig)
	}

	program := tea.NewProgram(
		newGuard(newModel(ctx, cfg)),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
