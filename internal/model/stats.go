package model

import "github.com/shopspring/decimal"

// StatusCount is one bucket of the status distribution.
type StatusCount struct {
	Status Status `json:"_id"`
	Count  int    `json:"count"`
}

// Stats is the aggregate snapshot served by the stats endpoint.
type Stats struct {
	TotalOrders int             `json:"totalOrders"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	StatusStats []StatusCount   `json:"statusStats"`
}

// CountFor returns the number of orders with the given status, or 0 when the
// status is absent from the distribution.
func (s Stats) CountFor(status Status) int {
	for _, sc := range s.StatusStats {
		if sc.Status == status {
			return sc.Count
		}
	}
	return 0
}
