package components

import (
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// TransactionSelectedMsg is sent when a row is opened.
type TransactionSelectedMsg struct {
	Transaction model.Transaction
	Index       int
}

// BackToListMsg requests to go back to the transaction list.
type BackToListMsg struct{}

// FilterSubmittedMsg carries the filter form's values as a patch.
type FilterSubmittedMsg struct {
	Patch filter.Patch
}

// FilterCancelledMsg closes the filter form without changes.
type FilterCancelledMsg struct{}

// StatusLookupMsg asks for the status of one order.
type StatusLookupMsg struct {
	OrderID string
}

// SchoolSubmittedMsg opens the listing of one school.
type SchoolSubmittedMsg struct {
	SchoolID string
}

// LoginSubmittedMsg carries the sign-in form's credentials.
type LoginSubmittedMsg struct {
	Credentials model.Credentials
}
