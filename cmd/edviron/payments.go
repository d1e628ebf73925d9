package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/thisispriyanshii/edviron-frontend/internal/cli"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Create payment links and check their status",
	}

	cmd.AddCommand(paymentsCreateCmd())
	cmd.AddCommand(paymentsStatusCmd())

	return cmd
}

func paymentsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a collect request and print its payment URL",
		Args:  cobra.NoArgs,
		RunE:  runPaymentsCreate,
	}

	cmd.Flags().String("school-id", "", "school collecting the payment")
	cmd.Flags().String("trustee-id", "", "trustee of the school")
	cmd.Flags().String("gateway", "", "payment gateway name")
	cmd.Flags().String("amount", "", "order amount in rupees")
	cmd.Flags().String("order-id", "", "custom order id (generated by the backend when omitted)")
	cmd.Flags().String("student-name", "", "student name")
	cmd.Flags().String("student-id", "", "student id")
	cmd.Flags().String("student-email", "", "student email")

	_ = cmd.MarkFlagRequired("school-id")
	_ = cmd.MarkFlagRequired("gateway")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPaymentsCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	raw, _ := flags.GetString("amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return common.Validation("amount %q is not a number", raw)
	}

	req := model.PaymentRequest{OrderAmount: amount}
	req.SchoolID, _ = flags.GetString("school-id")
	req.TrusteeID, _ = flags.GetString("trustee-id")
	req.GatewayName, _ = flags.GetString("gateway")
	req.CustomOrderID, _ = flags.GetString("order-id")
	req.StudentInfo.Name, _ = flags.GetString("student-name")
	req.StudentInfo.ID, _ = flags.GetString("student-id")
	req.StudentInfo.Email, _ = flags.GetString("student-email")

	b, err := signedIn(ctx, appConfig)
	if err != nil {
		return err
	}

	resp, err := b.client.CreatePayment(ctx, req)
	if err != nil {
		return b.authFailure(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Payment Created", cli.KeyValues([][2]string{
		{"Order ID", format.OrDash(resp.OrderID)},
		{"Collect ID", format.OrDash(resp.CollectID)},
		{"Amount", format.CurrencyINR(amount)},
		{"Payment URL", format.OrDash(resp.PaymentURL)},
	})))
	return nil
}

func paymentsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id>",
		Short: "Ask the gateway for the state of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := signedIn(ctx, appConfig)
			if err != nil {
				return err
			}

			status, err := b.client.PaymentStatus(ctx, args[0])
			if err != nil {
				return b.authFailure(err)
			}

			pairs := [][2]string{
				{"Order ID", format.OrDash(status.CustomOrderID)},
				{"Status", cli.FormatStatus(status.Status)},
				{"School ID", format.OrDash(status.SchoolID)},
				{"Student", format.OrDash(status.StudentInfo.Name)},
				{"Order Amount", format.CurrencyINR(status.OrderAmount)},
				{"Paid Amount", format.CurrencyINRPtr(status.TransactionAmount)},
				{"Payment Mode", format.OrDash(status.PaymentMode)},
				{"Bank Reference", format.OrDash(status.BankReference)},
				{"Payment Time", format.LongDateTime(status.PaymentTime)},
			}
			if status.ErrorMessage != "" {
				pairs = append(pairs, [2]string{"Error", cli.ErrorStyle.Render(status.ErrorMessage)})
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Payment Status", cli.KeyValues(pairs)))
			return nil
		},
	}
}
