package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle stage of a payment transaction.
type Status string

// Transaction statuses reported by the backend.
const (
	StatusCreated   Status = "created"
	StatusPending   Status = "pending"
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusCreated,
	StatusPending,
	StatusSuccess,
	StatusFailed,
	StatusCancelled,
}

// Valid reports whether s belongs to the closed status enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusPending, StatusSuccess, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus normalizes raw input into a Status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// StudentInfo identifies the student a payment order belongs to.
type StudentInfo struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Transaction is a read-only snapshot of a payment order as returned by the backend.
type Transaction struct {
	CollectID         string           `json:"collect_id"`
	CustomOrderID     string           `json:"custom_order_id"`
	SchoolID          string           `json:"school_id"`
	Gateway           string           `json:"gateway,omitempty"`
	Status            Status           `json:"status"`
	StudentInfo       StudentInfo      `json:"student_info"`
	OrderAmount       decimal.Decimal  `json:"order_amount"`
	TransactionAmount *decimal.Decimal `json:"transaction_amount,omitempty"`
	PaymentMode       string           `json:"payment_mode,omitempty"`
	BankReference     string           `json:"bank_reference,omitempty"`
	PaymentTime       string           `json:"payment_time,omitempty"`
	ErrorMessage      string           `json:"error_message,omitempty"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

// HasPaidAmount reports whether a non-zero settled amount is present.
func (t Transaction) HasPaidAmount() bool {
	return t.TransactionAmount != nil && !t.TransactionAmount.IsZero()
}

// PaginationMeta describes one page of a server-side listing.
type PaginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// IsZero reports whether the backend omitted the pagination block.
func (p PaginationMeta) IsZero() bool {
	return p == PaginationMeta{}
}

// PagesFor returns ceil(total/limit), or 0 when limit is not positive.
func PagesFor(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// TransactionPage is the list endpoint response.
type TransactionPage struct {
	Transactions []Transaction  `json:"transactions"`
	Pagination   PaginationMeta `json:"pagination"`
}
