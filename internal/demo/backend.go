// Package demo is an in-memory stand-in for the payments backend, used by
// `edviron dashboard --demo` and by tests.
package demo

import (
	"cmp"
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// Token is the access token handed out by the demo backend.
const Token = "demo-token"

// User is the operator signed in by the demo backend.
var User = model.User{
	ID:    "demo-admin",
	Email: "admin@edviron.demo",
	Name:  "Demo Admin",
	Role:  "admin",
}

// Backend serves generated transactions. School listings are returned
// without pagination metadata, like the real per-school endpoint.
type Backend struct {
	transactions []model.Transaction
	latency      time.Duration
	mu           sync.RWMutex
}

// Option configures a Backend.
type Option func(*Backend)

// WithLatency delays every call by d.
func WithLatency(d time.Duration) Option {
	return func(b *Backend) {
		b.latency = d
	}
}

// WithTransactions replaces the generated data set.
func WithTransactions(txns []model.Transaction) Option {
	return func(b *Backend) {
		b.transactions = txns
	}
}

// NewBackend creates a backend with count generated transactions.
func NewBackend(count int, seed uint64, opts ...Option) *Backend {
	b := &Backend{transactions: GenerateTransactions(count, seed)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Transactions returns a copy of the data set.
func (b *Backend) Transactions() []model.Transaction {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.transactions)
}

func (b *Backend) wait(ctx context.Context) error {
	if b.latency <= 0 {
		if err := ctx.Err(); err != nil {
			return &api.Error{Op: "demo", Kind: common.ErrTransport, Err: err}
		}
		return nil
	}
	select {
	case <-ctx.Done():
		return &api.Error{Op: "demo", Kind: common.ErrTransport, Err: ctx.Err()}
	case <-time.After(b.latency):
		return nil
	}
}

// ListTransactions implements api.Querier.
func (b *Backend) ListTransactions(ctx context.Context, state filter.State) (model.TransactionPage, error) {
	if err := b.wait(ctx); err != nil {
		return model.TransactionPage{}, err
	}

	matched := b.query(state, state.SchoolID)
	total := len(matched)
	return model.TransactionPage{
		Transactions: paginate(matched, state.Page, state.Limit),
		Pagination: model.PaginationMeta{
			Page:  state.Page,
			Limit: state.Limit,
			Total: total,
			Pages: model.PagesFor(total, state.Limit),
		},
	}, nil
}

// ListSchoolTransactions implements api.Querier.
func (b *Backend) ListSchoolTransactions(ctx context.Context, schoolID string, state filter.State) (model.TransactionPage, error) {
	if err := b.wait(ctx); err != nil {
		return model.TransactionPage{}, err
	}
	if !b.knownSchool(schoolID) {
		return model.TransactionPage{}, &api.Error{
			Op:         "list school transactions",
			Kind:       common.ErrNotFound,
			StatusCode: 404,
			Message:    fmt.Sprintf("School %s not found", schoolID),
		}
	}

	matched := b.query(state, schoolID)
	return model.TransactionPage{Transactions: paginate(matched, state.Page, state.Limit)}, nil
}

// TransactionStatus implements api.Querier.
func (b *Backend) TransactionStatus(ctx context.Context, orderID string) (model.Transaction, error) {
	if err := b.wait(ctx); err != nil {
		return model.Transaction{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, t := range b.transactions {
		if t.CustomOrderID == orderID || t.CollectID == orderID {
			return t, nil
		}
	}
	return model.Transaction{}, &api.Error{
		Op:         "transaction status",
		Kind:       common.ErrNotFound,
		StatusCode: 404,
		Message:    "Transaction not found",
	}
}

// Stats implements api.Querier.
func (b *Backend) Stats(ctx context.Context) (model.Stats, error) {
	if err := b.wait(ctx); err != nil {
		return model.Stats{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	counts := make(map[model.Status]int)
	total := decimal.Zero
	for _, t := range b.transactions {
		counts[t.Status]++
		total = total.Add(t.OrderAmount)
	}

	stats := model.Stats{TotalOrders: len(b.transactions), TotalAmount: total}
	for _, st := range model.Statuses {
		if n := counts[st]; n > 0 {
			stats.StatusStats = append(stats.StatusStats, model.StatusCount{Status: st, Count: n})
		}
	}
	return stats, nil
}

// Login implements api.AuthBackend. Any well-formed credentials are accepted.
func (b *Backend) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	if err := b.wait(ctx); err != nil {
		return model.AuthResponse{}, err
	}
	user := User
	user.Email = creds.Email
	return model.AuthResponse{AccessToken: Token, User: user}, nil
}

// Register implements api.AuthBackend.
func (b *Backend) Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error) {
	if err := b.wait(ctx); err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{
		AccessToken: Token,
		User: model.User{
			ID:       "demo-user",
			Email:    reg.Email,
			Name:     reg.Name,
			Role:     cmp.Or(reg.Role, "school_admin"),
			SchoolID: reg.SchoolID,
		},
	}, nil
}

// Profile implements api.AuthBackend.
func (b *Backend) Profile(ctx context.Context) (model.User, error) {
	if err := b.wait(ctx); err != nil {
		return model.User{}, err
	}
	return User, nil
}

func (b *Backend) knownSchool(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.ContainsFunc(b.transactions, func(t model.Transaction) bool {
		return t.SchoolID == id
	})
}

// query filters and sorts the data set.
func (b *Backend) query(state filter.State, schoolID string) []model.Transaction {
	b.mu.RLock()
	matched := make([]model.Transaction, 0, len(b.transactions))
	for _, t := range b.transactions {
		if matches(t, state, schoolID) {
			matched = append(matched, t)
		}
	}
	b.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, c model.Transaction) int {
		r := compareBy(state.Sort, a, c)
		if state.Order == filter.OrderDesc {
			return -r
		}
		return r
	})
	return matched
}

func matches(t model.Transaction, state filter.State, schoolID string) bool {
	if state.Status != "" && string(t.Status) != state.Status {
		return false
	}
	if schoolID != "" && t.SchoolID != schoolID {
		return false
	}
	day := t.CreatedAt
	if len(day) >= len(filter.DateLayout) {
		day = day[:len(filter.DateLayout)]
	}
	if state.StartDate != "" && day < state.StartDate {
		return false
	}
	if state.EndDate != "" && day > state.EndDate {
		return false
	}
	return true
}

func compareBy(field string, a, b model.Transaction) int {
	switch field {
	case "payment_time":
		return cmp.Compare(a.PaymentTime, b.PaymentTime)
	case "order_amount":
		return a.OrderAmount.Cmp(b.OrderAmount)
	case "status":
		return cmp.Compare(a.Status, b.Status)
	case "custom_order_id":
		return cmp.Compare(a.CustomOrderID, b.CustomOrderID)
	case "student_info.name":
		return cmp.Compare(a.StudentInfo.Name, b.StudentInfo.Name)
	default:
		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	}
}

func paginate(txns []model.Transaction, page, limit int) []model.Transaction {
	if limit <= 0 {
		return txns
	}
	start := (page - 1) * limit
	if start < 0 || start >= len(txns) {
		return []model.Transaction{}
	}
	end := min(start+limit, len(txns))
	return txns[start:end]
}

// GenerateTransactions creates count realistic transactions. The same seed
// always yields the same data set.
func GenerateTransactions(count int, seed uint64) []model.Transaction {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	schools := []string{
		"65b0e6293e9f76a9694d84b4",
		"65b0e6293e9f76a9694d84b5",
		"65b0e6293e9f76a9694d84b6",
		"65b0e6293e9f76a9694d84b7",
	}
	students := []string{
		"Aarav Sharma", "Diya Patel", "Vihaan Reddy", "Ananya Iyer", "Kabir Singh",
		"Ishita Nair", "Arjun Mehta", "Saanvi Gupta", "Reyansh Das", "Myra Joshi",
	}
	gateways := []string{"PhonePe", "Razorpay", "Cashfree", "PayU"}
	modes := []string{"upi", "netbanking", "credit_card", "debit_card", "wallet"}
	weighted := []model.Status{
		model.StatusSuccess, model.StatusSuccess, model.StatusSuccess, model.StatusSuccess,
		model.StatusPending, model.StatusFailed, model.StatusCreated, model.StatusCancelled,
	}

	base := time.Date(2025, time.March, 31, 18, 0, 0, 0, time.UTC)
	txns := make([]model.Transaction, 0, count)
	for i := 0; i < count; i++ {
		student := students[r.IntN(len(students))]
		status := weighted[r.IntN(len(weighted))]
		created := base.Add(-time.Duration(i*7+r.IntN(7)) * time.Hour)
		amount := decimal.NewFromInt(int64(500 + r.IntN(200)*250))

		t := model.Transaction{
			CollectID:     fmt.Sprintf("collect_%06d", i+1),
			CustomOrderID: fmt.Sprintf("ORD_%s_%04d", created.Format("20060102"), i+1),
			SchoolID:      schools[r.IntN(len(schools))],
			Gateway:       gateways[r.IntN(len(gateways))],
			Status:        status,
			StudentInfo: model.StudentInfo{
				Name:  student,
				ID:    fmt.Sprintf("STU%04d", 1000+r.IntN(9000)),
				Email: strings.ToLower(strings.ReplaceAll(student, " ", ".")) + "@school.demo",
			},
			OrderAmount: amount,
			CreatedAt:   created.Format(time.RFC3339),
			UpdatedAt:   created.Add(5 * time.Minute).Format(time.RFC3339),
		}

		switch status {
		case model.StatusSuccess:
			paid := amount.Add(decimal.NewFromInt(int64(r.IntN(3) * 10)))
			t.TransactionAmount = &paid
			t.PaymentMode = modes[r.IntN(len(modes))]
			t.BankReference = fmt.Sprintf("BNK%09d", r.IntN(1_000_000_000))
			t.PaymentTime = created.Add(3 * time.Minute).Format(time.RFC3339)
		case model.StatusFailed:
			t.PaymentMode = modes[r.IntN(len(modes))]
			t.ErrorMessage = "Payment declined by bank"
			t.PaymentTime = created.Add(3 * time.Minute).Format(time.RFC3339)
		}

		txns = append(txns, t)
	}
	return txns
}

var (
	_ api.Querier     = (*Backend)(nil)
	_ api.AuthBackend = (*Backend)(nil)
)
