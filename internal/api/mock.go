package api

import (
	"context"
	"sync"

	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// MockQuerier is a Querier whose behavior is set per test. It is safe for use
// from the goroutines that run dashboard commands.
type MockQuerier struct {
	ListTransactionsFn       func(ctx context.Context, state filter.State) (model.TransactionPage, error)
	ListSchoolTransactionsFn func(ctx context.Context, schoolID string, state filter.State) (model.TransactionPage, error)
	TransactionStatusFn      func(ctx context.Context, orderID string) (model.Transaction, error)
	StatsFn                  func(ctx context.Context) (model.Stats, error)

	mu          sync.Mutex
	listCalls   []filter.State
	schoolCalls []SchoolCall
	statusCalls []string
	statsCalls  int
}

// SchoolCall records the parameters of a ListSchoolTransactions call.
type SchoolCall struct {
	SchoolID string
	State    filter.State
}

// NewMockQuerier creates a mock returning empty results.
func NewMockQuerier() *MockQuerier {
	return &MockQuerier{}
}

// ListTransactions implements Querier.
func (m *MockQuerier) ListTransactions(ctx context.Context, state filter.State) (model.TransactionPage, error) {
	m.mu.Lock()
	m.listCalls = append(m.listCalls, state)
	m.mu.Unlock()

	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, state)
	}
	return model.TransactionPage{Transactions: []model.Transaction{}}, nil
}

// ListSchoolTransactions implements Querier.
func (m *MockQuerier) ListSchoolTransactions(ctx context.Context, schoolID string, state filter.State) (model.TransactionPage, error) {
	m.mu.Lock()
	m.schoolCalls = append(m.schoolCalls, SchoolCall{SchoolID: schoolID, State: state})
	m.mu.Unlock()

	if m.ListSchoolTransactionsFn != nil {
		return m.ListSchoolTransactionsFn(ctx, schoolID, state)
	}
	return model.TransactionPage{Transactions: []model.Transaction{}}, nil
}

// TransactionStatus implements Querier.
func (m *MockQuerier) TransactionStatus(ctx context.Context, orderID string) (model.Transaction, error) {
	m.mu.Lock()
	m.statusCalls = append(m.statusCalls, orderID)
	m.mu.Unlock()

	if m.TransactionStatusFn != nil {
		return m.TransactionStatusFn(ctx, orderID)
	}
	return model.Transaction{}, &Error{Op: "transaction status", Kind: common.ErrNotFound}
}

// Stats implements Querier.
func (m *MockQuerier) Stats(ctx context.Context) (model.Stats, error) {
	m.mu.Lock()
	m.statsCalls++
	m.mu.Unlock()

	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return model.Stats{}, nil
}

// ListCalls returns the states passed to ListTransactions.
func (m *MockQuerier) ListCalls() []filter.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]filter.State(nil), m.listCalls...)
}

// SchoolCalls returns the parameters passed to ListSchoolTransactions.
func (m *MockQuerier) SchoolCalls() []SchoolCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SchoolCall(nil), m.schoolCalls...)
}

// StatusCalls returns the order ids passed to TransactionStatus.
func (m *MockQuerier) StatusCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.statusCalls...)
}

// StatsCalls returns how often Stats was called.
func (m *MockQuerier) StatsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsCalls
}

// Reset clears all call tracking.
func (m *MockQuerier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls = nil
	m.schoolCalls = nil
	m.statusCalls = nil
	m.statsCalls = 0
}

var _ Querier = (*MockQuerier)(nil)
