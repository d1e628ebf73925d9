// Package listing is the filter and pagination state machine behind a
// transaction listing. It decides what to fetch and which completed fetch may
// update the view; the I/O itself happens in Fetch.
package listing

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// FetchFailedMessage is shown when a failure carries no server message.
const FetchFailedMessage = "Failed to fetch transactions"

// Scope selects the global listing or a single school's listing.
type Scope struct {
	SchoolID string
}

// All is the unscoped listing.
func All() Scope {
	return Scope{}
}

// School scopes a listing to one school.
func School(id string) Scope {
	return Scope{SchoolID: id}
}

// Scoped reports whether the listing is limited to one school.
func (s Scope) Scoped() bool {
	return s.SchoolID != ""
}

// Path is the location path of the listing.
func (s Scope) Path() string {
	if s.Scoped() {
		return "/transactions/school/" + url.PathEscape(s.SchoolID)
	}
	return "/transactions"
}

// Phase is the controller's fetch state.
type Phase int

// Phases.
const (
	Loading Phase = iota
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Request is one dispatched fetch. Seq orders requests; two requests with the
// same State still have different sequence numbers.
type Request struct {
	Scope Scope
	State filter.State
	Seq   uint64
}

// Result is the outcome of a Request.
type Result struct {
	Err        error
	Records    []model.Transaction
	Pagination Pagination
	Seq        uint64
}

// Controller owns the filter state of one listing. It is not safe for
// concurrent use; the dashboard drives it from its update loop.
type Controller struct {
	err        error
	logger     *zap.Logger
	records    []model.Transaction
	scope      Scope
	pagination Pagination
	state      filter.State
	seq        uint64
	phase      Phase
}

// New creates a controller seeded with seed and returns the first request.
// Invalid fields of the seed fall back to their defaults one by one.
func New(scope Scope, seed filter.State) (*Controller, Request) {
	c := &Controller{
		scope:  scope,
		logger: zap.L().Named("listing"),
	}

	if scope.Scoped() {
		seed.SchoolID = ""
	}
	if err := seed.Validate(); err != nil {
		c.logger.Debug("correcting invalid seed state", zap.Error(err))
		seed = seed.Sanitized()
	}
	return c, c.dispatch(seed)
}

// dispatch issues s. Pagination of a different filter no longer bounds page
// changes, so it is dropped until the new result arrives.
func (c *Controller) dispatch(s filter.State) Request {
	if !samePages(c.state, s) {
		c.pagination = Pagination{}
	}
	c.seq++
	c.state = s
	c.phase = Loading
	c.err = nil
	return Request{Scope: c.scope, State: s, Seq: c.seq}
}

// ApplyFilterChange merges p into the state and dispatches it. The page goes
// back to 1 unless p sets it. An invalid result is rejected with a validation
// error and nothing is dispatched.
func (c *Controller) ApplyFilterChange(p filter.Patch) (Request, error) {
	next := c.state.Apply(p)
	if c.scope.Scoped() {
		next.SchoolID = ""
	}
	if err := next.Validate(); err != nil {
		return Request{}, err
	}
	return c.dispatch(next), nil
}

// ChangePage requests page n. Pages outside [1, pages] of the last result
// for the current filter are refused and nothing is dispatched.
func (c *Controller) ChangePage(n int) (Request, bool) {
	if !c.pagination.Contains(n) {
		return Request{}, false
	}
	next := c.state
	next.Page = n
	return c.dispatch(next), true
}

// NextPage requests the page after the current one.
func (c *Controller) NextPage() (Request, bool) {
	return c.ChangePage(c.state.Page + 1)
}

// PrevPage requests the page before the current one.
func (c *Controller) PrevPage() (Request, bool) {
	return c.ChangePage(c.state.Page - 1)
}

// ToggleSort flips the order when field is already the sort column and
// otherwise sorts by field descending.
func (c *Controller) ToggleSort(field string) (Request, error) {
	order := filter.OrderDesc
	if field == c.state.Sort && c.state.Order == filter.OrderDesc {
		order = filter.OrderAsc
	}
	return c.ApplyFilterChange(filter.Patch{Sort: &field, Order: &order})
}

// ClearFilters drops the narrowing filters and resets the sort.
func (c *Controller) ClearFilters() Request {
	return c.dispatch(c.state.Cleared())
}

// Navigate restores a state exactly, page included, as when going back.
func (c *Controller) Navigate(s filter.State) (Request, error) {
	if c.scope.Scoped() {
		s.SchoolID = ""
	}
	if err := s.Validate(); err != nil {
		return Request{}, err
	}
	return c.dispatch(s), nil
}

// Refresh re-issues the current state.
func (c *Controller) Refresh() Request {
	return c.dispatch(c.state)
}

// Complete applies r if it answers the latest request and reports whether it
// did. Results of superseded requests are dropped.
func (c *Controller) Complete(r Result) bool {
	if r.Seq != c.seq {
		c.logger.Debug("discarding stale result",
			zap.Uint64("seq", r.Seq),
			zap.Uint64("latest", c.seq))
		return false
	}

	if r.Err != nil {
		c.phase = Failed
		c.err = r.Err
		c.records = nil
		return true
	}

	c.phase = Ready
	c.err = nil
	c.records = r.Records
	if c.records == nil {
		c.records = []model.Transaction{}
	}
	c.pagination = r.Pagination
	if c.pagination.Meta.IsZero() {
		c.pagination = paginationFor(c.scope, c.state, model.PaginationMeta{}, len(c.records))
	}
	return true
}

// samePages reports whether a and b list the same records and differ at most
// in the page shown.
func samePages(a, b filter.State) bool {
	a.Page, b.Page = 0, 0
	return a == b
}

// paginationFor picks the metadata shown for a response. Listings without
// totals are approximated only when records could be missing from the count:
// an empty global listing is exactly zero results.
func paginationFor(scope Scope, s filter.State, meta model.PaginationMeta, count int) Pagination {
	switch {
	case !meta.IsZero():
		return Server(meta)
	case scope.Scoped() || count > 0:
		return Approximated(s.Page, s.Limit, count)
	default:
		return Server(model.PaginationMeta{Page: s.Page, Limit: s.Limit})
	}
}

// Scope returns the listing scope.
func (c *Controller) Scope() Scope { return c.scope }

// State returns the current filter state.
func (c *Controller) State() filter.State { return c.state }

// Phase returns the fetch state.
func (c *Controller) Phase() Phase { return c.phase }

// Records returns the records of the last applied result.
func (c *Controller) Records() []model.Transaction { return c.records }

// Pagination returns the metadata of the last applied result.
func (c *Controller) Pagination() Pagination { return c.pagination }

// Seq returns the sequence number of the latest request.
func (c *Controller) Seq() uint64 { return c.seq }

// Err returns the failure of the latest request, if it failed.
func (c *Controller) Err() error { return c.err }

// ErrorMessage returns the text to show for a failed listing.
func (c *Controller) ErrorMessage() string {
	if c.phase != Failed {
		return ""
	}
	return common.Message(c.err, FetchFailedMessage)
}

// Location renders the listing as an address, e.g. "/transactions?page=2".
func (c *Controller) Location() string {
	return filter.Location(c.scope.Path(), c.state)
}

// Fetch performs the I/O for r. School listings without pagination metadata
// get approximated pagination.
func Fetch(ctx context.Context, q api.Querier, r Request) Result {
	var (
		page model.TransactionPage
		err  error
	)
	if r.Scope.Scoped() {
		page, err = q.ListSchoolTransactions(ctx, r.Scope.SchoolID, r.State)
	} else {
		page, err = q.ListTransactions(ctx, r.State)
	}
	if err != nil {
		return Result{Seq: r.Seq, Err: err}
	}

	pagination := paginationFor(r.Scope, r.State, page.Pagination, len(page.Transactions))
	return Result{Seq: r.Seq, Records: page.Transactions, Pagination: pagination}
}
