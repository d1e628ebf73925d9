package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// TransactionTable renders transactions as a bordered table.
func TransactionTable(txns []model.Transaction) string {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			t.CustomOrderID,
			format.OrDash(t.StudentInfo.Name),
			format.CurrencyINR(t.OrderAmount),
			format.CurrencyINRPtr(t.TransactionAmount),
			FormatStatus(t.Status),
			format.OrDash(t.PaymentMode),
			format.DateTime(t.CreatedAt),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers("ORDER ID", "STUDENT", "AMOUNT", "PAID", "STATUS", "MODE", "CREATED").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		String()
}
