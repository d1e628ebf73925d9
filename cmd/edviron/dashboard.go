package main

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thisispriyanshii/edviron-frontend/internal/demo"
	"github.com/thisispriyanshii/edviron-frontend/internal/session"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// Demo backend defaults.
const (
	defaultDemoCount   = 250
	defaultDemoLatency = 300 * time.Millisecond
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   dashboardCommand,
		Short: "Open the interactive transactions dashboard",
		Long: `Open the full-screen dashboard.

The dashboard starts at the transactions overview unless --location or
--school says otherwise. Locations use the same form as the header line,
for example "/transactions?status=failed&page=2".

With --demo the dashboard runs against generated data and accepts any
sign-in, so it works without a backend.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}

	cmd.Flags().String("location", "", "location to open, e.g. /transactions?status=success")
	cmd.Flags().String("school", "", "open the listing of this school")
	cmd.Flags().Bool("demo", false, "use generated data instead of the backend")
	cmd.Flags().Int("demo-count", defaultDemoCount, "number of generated transactions")
	cmd.Flags().Uint64("demo-seed", 0, "seed for generated data (default: current time)")
	cmd.Flags().Duration("demo-latency", defaultDemoLatency, "simulated response time")
	cmd.Flags().Bool("keys", false, "start with the full key help shown")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	location, _ := flags.GetString("location")
	if school, _ := flags.GetString("school"); school != "" {
		if location != "" {
			return errors.New("--location and --school cannot be combined")
		}
		location = "/transactions/school/" + url.PathEscape(school)
	}
	showKeys, _ := flags.GetBool("keys")
	demoMode, _ := flags.GetBool("demo")

	opts := []tui.Option{
		tui.WithTheme(themes.GetTheme(appConfig.UI.Theme)),
		tui.WithLocation(location),
		tui.WithTimeout(appConfig.API.Timeout),
		tui.WithHelp(showKeys),
		tui.WithDemo(demoMode),
	}

	if demoMode {
		count, _ := flags.GetInt("demo-count")
		seed, _ := flags.GetUint64("demo-seed")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		latency, _ := flags.GetDuration("demo-latency")

		backend := demo.NewBackend(count, seed, demo.WithLatency(latency))
		manager := session.NewManager(session.NewMemoryStore())
		manager.SetBackend(backend)

		zap.L().Info("starting dashboard in demo mode",
			zap.Int("transactions", count),
			zap.Uint64("seed", seed))
		opts = append(opts, tui.WithQuerier(backend), tui.WithSession(manager))
	} else {
		b, err := newBackend(appConfig)
		if err != nil {
			return err
		}

		zap.L().Info("starting dashboard", zap.String("api", b.client.BaseURL()))
		opts = append(opts, tui.WithQuerier(b.client), tui.WithSession(b.session))
	}

	if err := tui.Run(ctx, opts...); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
