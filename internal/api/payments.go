package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// CreatePayment creates a collect request and returns the payment page URL.
func (c *Client) CreatePayment(ctx context.Context, req model.PaymentRequest) (model.PaymentResponse, error) {
	const op = "create payment"
	if req.SchoolID == "" || req.GatewayName == "" {
		return model.PaymentResponse{}, validationError(op, "school id and gateway are required")
	}
	if !req.OrderAmount.IsPositive() {
		return model.PaymentResponse{}, validationError(op, "order amount must be positive")
	}

	var resp model.PaymentResponse
	if err := c.post(ctx, op, "/payments/create-payment", req, &resp); err != nil {
		return model.PaymentResponse{}, err
	}
	return resp, nil
}

// PaymentStatus asks the gateway for the state of an order.
func (c *Client) PaymentStatus(ctx context.Context, orderID string) (model.PaymentStatus, error) {
	const op = "payment status"
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return model.PaymentStatus{}, validationError(op, "order id is required")
	}

	var status model.PaymentStatus
	if err := c.get(ctx, op, "/payments/status/"+url.PathEscape(orderID), nil, &status); err != nil {
		return model.PaymentStatus{}, err
	}
	return status, nil
}
