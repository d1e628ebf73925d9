package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/cli"
	"github.com/thisispriyanshii/edviron-frontend/internal/config"
	"github.com/thisispriyanshii/edviron-frontend/internal/export"
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/listing"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// maxExportPages stops --all on a school listing that never returns a
// short page.
const maxExportPages = 1000

func transactionsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a filtered listing to CSV or PDF",
		Long: `Export the transactions matching the given filters.

Only the requested page is exported unless --all is given, in which case every
page of the result is fetched in turn. Use --school to export one school's
listing.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	addFilterFlags(cmd.Flags(), false)
	cmd.Flags().String("school", "", "export the listing of this school")
	cmd.Flags().String("format", "csv", "output format (csv, pdf)")
	cmd.Flags().StringP("output", "o", "", "output file (default: transactions.<format>)")
	cmd.Flags().Bool("all", false, "fetch every page of the result")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	f, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	state, err := filterState(cmd.Flags())
	if err != nil {
		return err
	}

	scope := listing.All()
	if school, _ := cmd.Flags().GetString("school"); school != "" {
		scope = listing.School(school)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "transactions." + string(f)
	}
	output = config.ExpandPath(output)

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context(), "Export")

	b, err := signedIn(ctx, appConfig)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	var txns []model.Transaction
	if all {
		txns, err = fetchAllPages(ctx, b.client, scope, state, cmd.ErrOrStderr())
	} else {
		var ctrl *listing.Controller
		ctrl, err = fetchListing(ctx, b.client, scope, state)
		if ctrl != nil {
			txns = ctrl.Records()
		}
	}
	if interrupts.WasInterrupted() {
		return nil
	}
	if err != nil {
		return b.authFailure(err)
	}

	title := "Transactions"
	if scope.Scoped() {
		title += " for School " + scope.SchoolID
	}
	content, err := export.Render(f, export.Transactions(txns), title)
	if err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(output, content, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	zap.L().Info("exported transactions",
		zap.String("file", output),
		zap.String("format", string(f)),
		zap.Int("count", len(txns)))

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Exported %s transactions (%s) to %s",
		format.Count(len(txns)), format.CurrencyINR(export.Total(txns)), output)))
	return nil
}

// fetchAllPages walks the listing from the state's page to the last page.
// Listings without server totals end at the first short page.
func fetchAllPages(ctx context.Context, q api.Querier, scope listing.Scope, state filter.State, progress io.Writer) ([]model.Transaction, error) {
	ctrl, err := fetchListing(ctx, q, scope, state)
	if err != nil {
		return nil, err
	}

	total := -1
	if p := ctrl.Pagination(); !p.Approximate() {
		total = max(p.Meta.Pages-state.Page+1, 1)
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Fetching pages...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(progress)
		}),
	)

	txns := append([]model.Transaction(nil), ctrl.Records()...)
	_ = bar.Add(1)

	for pages := 1; pages < maxExportPages; pages++ {
		var req listing.Request
		if p := ctrl.Pagination(); p.Approximate() {
			// A full page may be followed by another.
			if len(ctrl.Records()) < p.Meta.Limit {
				break
			}
			next := ctrl.State()
			next.Page++
			if req, err = ctrl.Navigate(next); err != nil {
				return nil, err
			}
		} else {
			var ok bool
			if req, ok = ctrl.NextPage(); !ok {
				break
			}
		}

		ctrl.Complete(listing.Fetch(ctx, q, req))
		if ctrl.Phase() == listing.Failed {
			return nil, ctrl.Err()
		}
		txns = append(txns, ctrl.Records()...)
		_ = bar.Add(1)
	}

	_ = bar.Finish()
	return txns, nil
}
