// Package format renders money, counts, timestamps and status badges for display.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// Dash stands in for a missing value.
const Dash = "-"

// CurrencyINR formats an amount as Indian rupees: the ₹ symbol, lakh/crore
// digit grouping and exactly two decimals.
func CurrencyINR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// CurrencyINRPtr formats an optional amount, rendering a dash when it is absent.
func CurrencyINRPtr(amount *decimal.Decimal) string {
	if amount == nil {
		return Dash
	}
	return CurrencyINR(*amount)
}

// groupIndian inserts separators after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

// Count formats an integer with thousands separators.
func Count(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp shapes the backend emits.
func ParseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateTime renders a backend timestamp for table cells in local time. Empty
// input renders as a dash; unparsable input is returned unchanged.
func DateTime(raw string) string {
	return render(raw, "Jan 02, 2006 15:04")
}

// LongDateTime renders a timestamp for detail views.
func LongDateTime(raw string) string {
	return render(raw, "Monday, January 2, 2006 at 3:04:05 PM")
}

func render(raw, layout string) string {
	if raw == "" {
		return Dash
	}
	t, ok := ParseTimestamp(raw)
	if !ok {
		return raw
	}
	return t.Local().Format(layout)
}

// OrDash returns s, or a dash when s is empty.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dash
	}
	return s
}

// Badge is the presentation of a status.
type Badge struct {
	Status model.Status
	Label  string
	Class  string
}

var badges = map[model.Status]Badge{
	model.StatusCreated:   {Status: model.StatusCreated, Label: "Created", Class: "info"},
	model.StatusPending:   {Status: model.StatusPending, Label: "Pending", Class: "warning"},
	model.StatusSuccess:   {Status: model.StatusSuccess, Label: "Success", Class: "success"},
	model.StatusFailed:    {Status: model.StatusFailed, Label: "Failed", Class: "error"},
	model.StatusCancelled: {Status: model.StatusCancelled, Label: "Cancelled", Class: "muted"},
}

// BadgeFor looks up the badge for a status. Unknown values get the created badge.
func BadgeFor(status model.Status) Badge {
	if b, ok := badges[model.Status(strings.ToLower(string(status)))]; ok {
		return b
	}
	return badges[model.StatusCreated]
}
