package model

import "github.com/shopspring/decimal"

// PaymentRequest creates a collect request at the payment gateway.
type PaymentRequest struct {
	SchoolID      string          `json:"school_id" validate:"required"`
	TrusteeID     string          `json:"trustee_id,omitempty"`
	StudentInfo   StudentInfo     `json:"student_info"`
	GatewayName   string          `json:"gateway_name" validate:"required"`
	CustomOrderID string          `json:"custom_order_id,omitempty"`
	OrderAmount   decimal.Decimal `json:"order_amount"`
}

// PaymentResponse carries the redirect URL for a created payment.
type PaymentResponse struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"payment_url"`
	OrderID    string `json:"order_id"`
	CollectID  string `json:"collect_id,omitempty"`
}

// PaymentStatus is the gateway-side view of an order.
type PaymentStatus struct {
	OrderID           string           `json:"order_id"`
	CustomOrderID     string           `json:"custom_order_id"`
	SchoolID          string           `json:"school_id"`
	StudentInfo       StudentInfo      `json:"student_info"`
	OrderAmount       decimal.Decimal  `json:"order_amount"`
	TransactionAmount *decimal.Decimal `json:"transaction_amount,omitempty"`
	Status            Status           `json:"status"`
	PaymentMode       string           `json:"payment_mode,omitempty"`
	BankReference     string           `json:"bank_reference,omitempty"`
	PaymentTime       string           `json:"payment_time,omitempty"`
	ErrorMessage      string           `json:"error_message,omitempty"`
}
