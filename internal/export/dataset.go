// Package export renders transaction listings as CSV or PDF files.
package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thisispriyanshii/edviron-frontend/internal/format"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// Format is an output file format.
type Format string

// Supported formats.
const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want csv or pdf)", s)
}

// Dataset is tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Column headers of a transaction export.
const (
	ColOrderID     = "Order ID"
	ColCollectID   = "Collect ID"
	ColSchoolID    = "School ID"
	ColStudent     = "Student"
	ColStudentID   = "Student ID"
	ColGateway     = "Gateway"
	ColStatus      = "Status"
	ColOrderAmount = "Order Amount"
	ColPaidAmount  = "Paid Amount"
	ColPaymentMode = "Payment Mode"
	ColCreatedAt   = "Created At"
)

// Transactions builds a dataset from txns. Amounts use plain two-decimal
// numbers so spreadsheets can sum them.
func Transactions(txns []model.Transaction) Dataset {
	data := Dataset{
		Headers: []string{
			ColOrderID, ColCollectID, ColSchoolID, ColStudent, ColStudentID, ColGateway,
			ColStatus, ColOrderAmount, ColPaidAmount, ColPaymentMode, ColCreatedAt,
		},
		Rows: make([]map[string]string, 0, len(txns)),
	}

	for _, t := range txns {
		paid := ""
		if t.TransactionAmount != nil {
			paid = t.TransactionAmount.StringFixed(2)
		}
		data.Rows = append(data.Rows, map[string]string{
			ColOrderID:     t.CustomOrderID,
			ColCollectID:   t.CollectID,
			ColSchoolID:    t.SchoolID,
			ColStudent:     t.StudentInfo.Name,
			ColStudentID:   t.StudentInfo.ID,
			ColGateway:     t.Gateway,
			ColStatus:      format.BadgeFor(t.Status).Label,
			ColOrderAmount: t.OrderAmount.StringFixed(2),
			ColPaidAmount:  paid,
			ColPaymentMode: t.PaymentMode,
			ColCreatedAt:   t.CreatedAt,
		})
	}
	return data
}

// Total sums the order amounts of txns.
func Total(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.OrderAmount)
	}
	return total
}

// Render encodes data in the given format.
func Render(f Format, data Dataset, title string) ([]byte, error) {
	switch f {
	case FormatCSV:
		return NewCSVExporter().Render(data)
	case FormatPDF:
		return NewPDFExporter().Render(data, title)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}
