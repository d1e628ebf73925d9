package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/cli"
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/listing"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/components"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txn", "tx"},
		Short:   "Query payment transactions",
		Long: `List, look up and summarize school fee transactions.

Listings accept the same filters as the dashboard, either as flags or as a
query string copied from the dashboard's location line:

  edviron transactions list --query "status=success&page=2"
  edviron transactions list --status failed --from 2024-01-01`,
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsSchoolCmd())
	cmd.AddCommand(transactionsStatusCmd())
	cmd.AddCommand(transactionsStatsCmd())
	cmd.AddCommand(transactionsExportCmd())

	return cmd
}

// addFilterFlags registers the listing filters. School listings carry the
// school in their argument, so they skip --school-id.
func addFilterFlags(flags *pflag.FlagSet, scoped bool) {
	flags.String("query", "", `filter query string or location, e.g. "status=success&page=2"`)
	flags.String("status", "", "status (created, pending, success, failed, cancelled)")
	if !scoped {
		flags.String("school-id", "", "school id")
	}
	flags.String("from", "", "start date (YYYY-MM-DD)")
	flags.String("to", "", "end date (YYYY-MM-DD)")
	flags.String("sort", "", "sort column ("+strings.Join(filter.SortFields, ", ")+")")
	flags.String("order", "", "sort order (asc, desc)")
	flags.Int("page", 0, "page number")
	flags.Int("limit", 0, "page size (10, 20, 50, 100)")
}

// filterState builds the listing state from --query and then the explicit
// flags, which win over the query string.
func filterState(flags *pflag.FlagSet) (filter.State, error) {
	query, _ := flags.GetString("query")
	state := filter.Decode(strings.TrimPrefix(query, "?"))
	if strings.HasPrefix(query, "/") {
		_, state = filter.SplitLocation(query)
	}

	patch := filter.Patch{Page: filter.Ptr(state.Page)}
	stringFlags := map[string]**string{
		"status":    &patch.Status,
		"school-id": &patch.SchoolID,
		"from":      &patch.StartDate,
		"to":        &patch.EndDate,
		"sort":      &patch.Sort,
		"order":     &patch.Order,
	}
	for name, field := range stringFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, _ := flags.GetString(name)
		*field = filter.Ptr(strings.TrimSpace(v))
	}
	if flags.Changed("page") {
		v, _ := flags.GetInt("page")
		patch.Page = filter.Ptr(v)
	}
	if flags.Changed("limit") {
		v, _ := flags.GetInt("limit")
		patch.Limit = filter.Ptr(v)
	}
	if patch.Status != nil {
		*patch.Status = strings.ToLower(*patch.Status)
	}

	state = state.Apply(patch)
	if err := state.Validate(); err != nil {
		return filter.State{}, err
	}
	return state, nil
}

// fetchListing runs one listing request through a controller so the output
// carries the same pagination and location as the dashboard.
func fetchListing(ctx context.Context, q api.Querier, scope listing.Scope, state filter.State) (*listing.Controller, error) {
	ctrl, req := listing.New(scope, state)
	ctrl.Complete(listing.Fetch(ctx, q, req))
	if ctrl.Phase() == listing.Failed {
		return nil, ctrl.Err()
	}
	return ctrl, nil
}

func printListing(w io.Writer, title string, ctrl *listing.Controller) {
	fmt.Fprintln(w, cli.FormatTitle(title))
	records := ctrl.Records()
	if len(records) == 0 {
		fmt.Fprintln(w, cli.FormatInfo("No transactions found. Try adjusting your filters."))
	} else {
		fmt.Fprintln(w, cli.TransactionTable(records))
	}
	fmt.Fprintln(w, cli.SubtleStyle.Render(ctrl.Pagination().Summary()))
	fmt.Fprintln(w, cli.SubtleStyle.Render("Location: "+ctrl.Location()))
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions across all schools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			state, err := filterState(cmd.Flags())
			if err != nil {
				return err
			}

			b, err := signedIn(ctx, appConfig)
			if err != nil {
				return err
			}
			ctrl, err := fetchListing(ctx, b.client, listing.All(), state)
			if err != nil {
				return b.authFailure(err)
			}

			printListing(cmd.OutOrStdout(), "Transactions", ctrl)
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), false)

	return cmd
}

func transactionsSchoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "school <school-id>",
		Short: "List the transactions of one school",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := filterState(cmd.Flags())
			if err != nil {
				return err
			}

			b, err := signedIn(ctx, appConfig)
			if err != nil {
				return err
			}
			ctrl, err := fetchListing(ctx, b.client, listing.School(args[0]), state)
			if err != nil {
				return b.authFailure(err)
			}

			printListing(cmd.OutOrStdout(), "Transactions for School "+args[0], ctrl)
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), true)

	return cmd
}

func transactionsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id>",
		Short: "Look up one transaction by its order id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := signedIn(ctx, appConfig)
			if err != nil {
				return err
			}

			txn, err := b.client.TransactionStatus(ctx, args[0])
			if err != nil {
				return b.authFailure(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Transaction Details", transactionDetails(txn)))
			return nil
		},
	}
}

// transactionDetails renders the dashboard's detail card as plain lines.
func transactionDetails(txn model.Transaction) string {
	detail := components.NewTransactionDetailModel(themes.Default)
	detail.SetTransaction(txn)

	fields := detail.Fields()
	pairs := make([][2]string, 0, len(fields))
	for _, f := range fields {
		value := f.Value
		switch f.Label {
		case "Status":
			value = cli.FormatStatus(txn.Status)
		case "Error":
			value = cli.ErrorStyle.Render(value)
		}
		pairs = append(pairs, [2]string{f.Label, value})
	}
	return cli.KeyValues(pairs)
}

func transactionsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show order totals and the status distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := signedIn(ctx, appConfig)
			if err != nil {
				return err
			}

			stats, err := b.client.Stats(ctx)
			if err != nil {
				return b.authFailure(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Payments Overview", statsSummary(stats)))
			return nil
		},
	}
}

func statsSummary(stats model.Stats) string {
	pairs := [][2]string{
		{"Total Orders", format.Count(stats.TotalOrders)},
		{"Total Amount", format.CurrencyINR(stats.TotalAmount)},
	}
	for _, status := range model.Statuses {
		pairs = append(pairs, [2]string{
			format.BadgeFor(status).Label,
			format.Count(stats.CountFor(status)),
		})
	}
	return cli.KeyValues(pairs)
}
