package api

import (
	"context"

	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// Querier is the read-only transaction query surface used by the dashboard.
// It allows swapping the REST client for the demo backend or a mock.
type Querier interface {
	ListTransactions(ctx context.Context, state filter.State) (model.TransactionPage, error)
	ListSchoolTransactions(ctx context.Context, schoolID string, state filter.State) (model.TransactionPage, error)
	TransactionStatus(ctx context.Context, orderID string) (model.Transaction, error)
	Stats(ctx context.Context) (model.Stats, error)
}

// AuthBackend is the authentication surface used by the session manager.
type AuthBackend interface {
	Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error)
	Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error)
	Profile(ctx context.Context) (model.User, error)
}

var (
	_ Querier     = (*Client)(nil)
	_ AuthBackend = (*Client)(nil)
)
