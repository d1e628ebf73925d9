package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// ListTransactions fetches one page of the global transaction list.
func (c *Client) ListTransactions(ctx context.Context, state filter.State) (model.TransactionPage, error) {
	const op = "list transactions"
	if err := state.Validate(); err != nil {
		return model.TransactionPage{}, validationError(op, err.Error())
	}

	var page model.TransactionPage
	if err := c.get(ctx, op, "/transactions", state.Values(false), &page); err != nil {
		return model.TransactionPage{}, err
	}
	if page.Transactions == nil {
		page.Transactions = []model.Transaction{}
	}
	return page, nil
}

// schoolPage accepts both the paginated envelope and a bare array.
type schoolPage struct {
	model.TransactionPage
}

func (s *schoolPage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &s.Transactions)
	}
	return json.Unmarshal(trimmed, &s.TransactionPage)
}

// ListSchoolTransactions fetches transactions for one school. The returned
// page has a zero Pagination when the backend answered with a bare array.
func (c *Client) ListSchoolTransactions(ctx context.Context, schoolID string, state filter.State) (model.TransactionPage, error) {
	const op = "list school transactions"
	schoolID = strings.TrimSpace(schoolID)
	if schoolID == "" {
		return model.TransactionPage{}, validationError(op, "school id is required")
	}
	if err := state.Validate(); err != nil {
		return model.TransactionPage{}, validationError(op, err.Error())
	}

	var page schoolPage
	path := "/transactions/school/" + url.PathEscape(schoolID)
	if err := c.get(ctx, op, path, state.Values(true), &page); err != nil {
		return model.TransactionPage{}, err
	}
	if page.Transactions == nil {
		page.Transactions = []model.Transaction{}
	}
	return page.TransactionPage, nil
}

// TransactionStatus looks up a single transaction by its custom order id.
func (c *Client) TransactionStatus(ctx context.Context, orderID string) (model.Transaction, error) {
	const op = "transaction status"
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return model.Transaction{}, validationError(op, "order id is required")
	}

	var txn model.Transaction
	if err := c.get(ctx, op, "/transactions/status/"+url.PathEscape(orderID), nil, &txn); err != nil {
		return model.Transaction{}, err
	}
	if txn.CustomOrderID == "" && txn.CollectID == "" {
		return model.Transaction{}, &Error{Op: op, Kind: common.ErrNotFound, Message: fmt.Sprintf("no transaction for order %s", orderID)}
	}
	return txn, nil
}

// Stats fetches the aggregate snapshot.
func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	if err := c.get(ctx, "transaction stats", "/transactions/stats", nil, &stats); err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}
