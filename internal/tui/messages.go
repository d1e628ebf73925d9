package tui

import (
	"github.com/thisispriyanshii/edviron-frontend/internal/listing"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// Session messages.
type sessionRestoredMsg struct {
	err error
}

type loginResultMsg struct {
	err  error
	user model.User
}

// Data loading messages. Each carries the sequence number of the dispatch
// that produced it so superseded responses can be dropped. Listing responses
// also carry the generation of the listing they were fetched for, which
// changes whenever the listing is rebuilt or the session ends.
type transactionsLoadedMsg struct {
	result     listing.Result
	generation int
	school     bool
}

type statsLoadedMsg struct {
	err   error
	stats model.Stats
	seq   uint64
}

type statusLoadedMsg struct {
	err         error
	orderID     string
	transaction model.Transaction
	seq         uint64
}
