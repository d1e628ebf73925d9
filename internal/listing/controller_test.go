package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

func records(ids ...string) []model.Transaction {
	txns := make([]model.Transaction, len(ids))
	for i, id := range ids {
		txns[i] = model.Transaction{CustomOrderID: id, Status: model.StatusSuccess}
	}
	return txns
}

func serverResult(req Request, pages int, ids ...string) Result {
	return Result{
		Seq:     req.Seq,
		Records: records(ids...),
		Pagination: Server(model.PaginationMeta{
			Page:  req.State.Page,
			Limit: req.State.Limit,
			Total: pages * req.State.Limit,
			Pages: pages,
		}),
	}
}

func TestNew_StartsLoadingWithSeed(t *testing.T) {
	seed := filter.Decode("status=failed&page=3")
	c, req := New(All(), seed)

	assert.Equal(t, Loading, c.Phase())
	assert.Equal(t, uint64(1), req.Seq)
	assert.Equal(t, seed, req.State)
	assert.Equal(t, "/transactions?page=3&status=failed", c.Location())
}

func TestNew_InvalidSeedFallsBackToDefaults(t *testing.T) {
	seed := filter.Default()
	seed.StartDate = "yesterday"

	_, req := New(All(), seed)
	assert.Equal(t, filter.Default(), req.State)
}

func TestNew_InvalidSeedFieldsAreCorrectedIndividually(t *testing.T) {
	seed := filter.Decode("status=failed&sort=bogus&start_date=2024-02-01")

	_, req := New(All(), seed)
	assert.Equal(t, "failed", req.State.Status)
	assert.Equal(t, filter.DefaultSort, req.State.Sort)
	assert.Equal(t, "2024-02-01", req.State.StartDate)
	assert.NoError(t, req.State.Validate())
}

func TestNew_SchoolScopeDropsSchoolFilter(t *testing.T) {
	seed := filter.Default()
	seed.SchoolID = "other"

	c, req := New(School("s1"), seed)
	assert.Empty(t, req.State.SchoolID)
	assert.Equal(t, "/transactions/school/s1", c.Location())
}

func TestApplyFilterChange_ResetsPage(t *testing.T) {
	c, req := New(All(), filter.Default())
	require.True(t, c.Complete(serverResult(req, 5, "a")))

	req, ok := c.ChangePage(4)
	require.True(t, ok)
	require.True(t, c.Complete(serverResult(req, 5, "b")))
	require.Equal(t, 4, c.State().Page)

	req, err := c.ApplyFilterChange(filter.Patch{Status: filter.Ptr("pending")})
	require.NoError(t, err)
	assert.Equal(t, 1, req.State.Page)
	assert.Equal(t, "pending", req.State.Status)
	assert.Equal(t, Loading, c.Phase())

	req, err = c.ApplyFilterChange(filter.Patch{Page: filter.Ptr(2), Limit: filter.Ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, 2, req.State.Page)
}

func TestApplyFilterChange_RejectsInvalidChange(t *testing.T) {
	c, req := New(All(), filter.Default())

	_, err := c.ApplyFilterChange(filter.Patch{Limit: filter.Ptr(13)})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, req.Seq, c.Seq())
	assert.Equal(t, filter.Default(), c.State())
}

func TestChangePage_OutOfRangeSendsNothing(t *testing.T) {
	c, req := New(All(), filter.Default())
	require.True(t, c.Complete(serverResult(req, 3, "a")))
	seq := c.Seq()

	for _, n := range []int{0, -1, 4, 100} {
		_, ok := c.ChangePage(n)
		assert.False(t, ok, "page %d", n)
	}
	assert.Equal(t, seq, c.Seq())
	assert.Equal(t, Ready, c.Phase())

	_, ok := c.PrevPage()
	assert.False(t, ok)

	req, ok = c.ChangePage(3)
	require.True(t, ok)
	assert.Equal(t, 3, req.State.Page)
	assert.Equal(t, seq+1, req.Seq)
}

func TestChangePage_BeforeFirstResultSendsNothing(t *testing.T) {
	c, _ := New(All(), filter.Default())
	_, ok := c.ChangePage(1)
	assert.False(t, ok)
}

func TestChangePage_RefusedWhileFilterLoading(t *testing.T) {
	c, req := New(All(), filter.Default())
	require.True(t, c.Complete(serverResult(req, 10, "a")))

	req, err := c.ApplyFilterChange(filter.Patch{Status: filter.Ptr("failed")})
	require.NoError(t, err)
	seq := c.Seq()

	_, ok := c.ChangePage(7)
	assert.False(t, ok)
	_, ok = c.NextPage()
	assert.False(t, ok)
	assert.Equal(t, seq, c.Seq())

	require.True(t, c.Complete(serverResult(req, 2, "b")))
	_, ok = c.ChangePage(7)
	assert.False(t, ok)
	req, ok = c.ChangePage(2)
	require.True(t, ok)
	assert.Equal(t, "failed", req.State.Status)
}

func TestChangePage_RefusedAfterFailedFilterChange(t *testing.T) {
	c, req := New(All(), filter.Default())
	require.True(t, c.Complete(serverResult(req, 10, "a")))

	req, err := c.ApplyFilterChange(filter.Patch{Status: filter.Ptr("pending")})
	require.NoError(t, err)
	require.True(t, c.Complete(Result{Seq: req.Seq, Err: errors.New("boom")}))

	_, ok := c.ChangePage(3)
	assert.False(t, ok)
}

func TestChangePage_KeepsBoundsForSameFilter(t *testing.T) {
	c, req := New(All(), filter.Default())
	require.True(t, c.Complete(serverResult(req, 4, "a")))

	_, ok := c.ChangePage(2)
	require.True(t, ok)
	_, ok = c.ChangePage(4)
	assert.True(t, ok)

	c.Refresh()
	_, ok = c.ChangePage(3)
	assert.True(t, ok)
}

func TestChangePage_KeepsOtherFields(t *testing.T) {
	seed := filter.Default()
	seed.Status = "success"
	seed.Sort = "order_amount"

	c, req := New(All(), seed)
	require.True(t, c.Complete(serverResult(req, 2, "a")))

	req, ok := c.NextPage()
	require.True(t, ok)
	assert.Equal(t, 2, req.State.Page)
	assert.Equal(t, "success", req.State.Status)
	assert.Equal(t, "order_amount", req.State.Sort)
}

func TestToggleSort(t *testing.T) {
	tests := []struct {
		name      string
		sort      string
		order     string
		field     string
		wantOrder string
	}{
		{name: "same field ascending flips to descending", sort: "order_amount", order: "asc", field: "order_amount", wantOrder: "desc"},
		{name: "same field descending flips to ascending", sort: "order_amount", order: "desc", field: "order_amount", wantOrder: "asc"},
		{name: "different field from ascending starts descending", sort: "created_at", order: "asc", field: "status", wantOrder: "desc"},
		{name: "different field from descending starts descending", sort: "created_at", order: "desc", field: "status", wantOrder: "desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := filter.Default()
			seed.Sort = tt.sort
			seed.Order = tt.order
			seed.Page = 2

			c, _ := New(All(), seed)
			req, err := c.ToggleSort(tt.field)
			require.NoError(t, err)

			assert.Equal(t, tt.field, req.State.Sort)
			assert.Equal(t, tt.wantOrder, req.State.Order)
			assert.Equal(t, 1, req.State.Page)
		})
	}
}

func TestComplete_DiscardsStaleResult(t *testing.T) {
	c, first := New(All(), filter.Default())
	require.True(t, c.Complete(serverResult(first, 3, "initial")))

	r1, ok := c.ChangePage(1)
	require.True(t, ok)
	r2, ok := c.ChangePage(2)
	require.True(t, ok)
	require.Greater(t, r2.Seq, r1.Seq)

	// R2 arrives first, then R1 late.
	assert.True(t, c.Complete(serverResult(r2, 3, "page-2")))
	assert.False(t, c.Complete(serverResult(r1, 3, "page-1")))

	assert.Equal(t, Ready, c.Phase())
	require.Len(t, c.Records(), 1)
	assert.Equal(t, "page-2", c.Records()[0].CustomOrderID)
	assert.Equal(t, 2, c.Pagination().Meta.Page)
}

func TestComplete_StaleResultWhileLoading(t *testing.T) {
	c, first := New(All(), filter.Default())
	second := c.Refresh()
	require.Equal(t, first.State, second.State)

	assert.False(t, c.Complete(serverResult(first, 1, "old")))
	assert.Equal(t, Loading, c.Phase())
	assert.Nil(t, c.Records())

	assert.True(t, c.Complete(serverResult(second, 1, "new")))
	assert.Equal(t, "new", c.Records()[0].CustomOrderID)
}

func TestComplete_StaleFailureIsIgnored(t *testing.T) {
	c, first := New(All(), filter.Default())
	second := c.Refresh()

	assert.False(t, c.Complete(Result{Seq: first.Seq, Err: errors.New("boom")}))
	assert.True(t, c.Complete(serverResult(second, 1, "ok")))
	assert.Equal(t, Ready, c.Phase())
	assert.NoError(t, c.Err())
}

func TestComplete_Failure(t *testing.T) {
	c, req := New(All(), filter.Default())

	assert.True(t, c.Complete(Result{Seq: req.Seq, Err: &api.Error{Kind: common.ErrTransport}}))
	assert.Equal(t, Failed, c.Phase())
	assert.Equal(t, FetchFailedMessage, c.ErrorMessage())

	req = c.Refresh()
	assert.Equal(t, Loading, c.Phase())
	assert.NoError(t, c.Err())
	assert.Empty(t, c.ErrorMessage())

	c.Complete(Result{Seq: req.Seq, Err: &api.Error{Kind: common.ErrNotFound, Message: "School not found"}})
	assert.Equal(t, "School not found", c.ErrorMessage())
}

func TestComplete_DerivesApproximatePagination(t *testing.T) {
	seed := filter.Default()
	seed.Limit = 10

	c, req := New(School("s1"), seed)
	assert.True(t, c.Complete(Result{Seq: req.Seq, Records: records("a", "b", "c")}))

	p := c.Pagination()
	assert.True(t, p.Approximate())
	assert.Equal(t, model.PaginationMeta{Page: 1, Limit: 10, Total: 3, Pages: 1}, p.Meta)

	_, ok := c.ChangePage(2)
	assert.False(t, ok)
}

func TestComplete_EmptyGlobalListingIsExact(t *testing.T) {
	c, req := New(All(), filter.Default())
	require.True(t, c.Complete(Result{Seq: req.Seq}))

	p := c.Pagination()
	assert.False(t, p.Approximate())
	assert.Equal(t, "Showing 0 to 0 of 0 results", p.Summary())
}

func TestClearFilters(t *testing.T) {
	seed := filter.State{Page: 3, Limit: 50, Sort: "status", Order: "asc", Status: "failed", StartDate: "2024-01-01"}
	c, _ := New(All(), seed)

	req := c.ClearFilters()
	assert.Equal(t, filter.State{Page: 1, Limit: 50, Sort: "created_at", Order: "desc"}, req.State)
}

func TestNavigate_RestoresPage(t *testing.T) {
	c, _ := New(All(), filter.Default())

	target := filter.Decode("page=4&status=success")
	req, err := c.Navigate(target)
	require.NoError(t, err)
	assert.Equal(t, 4, req.State.Page)
	assert.Equal(t, "/transactions?page=4&status=success", c.Location())
}

func TestFetch(t *testing.T) {
	q := api.NewMockQuerier()
	q.ListTransactionsFn = func(_ context.Context, state filter.State) (model.TransactionPage, error) {
		return model.TransactionPage{
			Transactions: records("a", "b"),
			Pagination:   model.PaginationMeta{Page: state.Page, Limit: state.Limit, Total: 42, Pages: 3},
		}, nil
	}
	q.ListSchoolTransactionsFn = func(context.Context, string, filter.State) (model.TransactionPage, error) {
		return model.TransactionPage{Transactions: records("x")}, nil
	}

	_, req := New(All(), filter.Default())
	res := Fetch(context.Background(), q, req)
	require.NoError(t, res.Err)
	assert.Equal(t, req.Seq, res.Seq)
	assert.False(t, res.Pagination.Approximate())
	assert.Equal(t, 42, res.Pagination.Meta.Total)

	_, req = New(School("s1"), filter.Default())
	res = Fetch(context.Background(), q, req)
	require.NoError(t, res.Err)
	assert.True(t, res.Pagination.Approximate())
	assert.Equal(t, 1, res.Pagination.Meta.Total)

	calls := q.SchoolCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "s1", calls[0].SchoolID)
}

func TestFetch_GlobalListingWithoutMetadata(t *testing.T) {
	q := api.NewMockQuerier()
	q.ListTransactionsFn = func(context.Context, filter.State) (model.TransactionPage, error) {
		return model.TransactionPage{Transactions: []model.Transaction{}}, nil
	}

	_, req := New(All(), filter.Default())
	res := Fetch(context.Background(), q, req)
	require.NoError(t, res.Err)
	assert.False(t, res.Pagination.Approximate())
	assert.Equal(t, model.PaginationMeta{Page: 1, Limit: 20}, res.Pagination.Meta)

	q.ListTransactionsFn = func(context.Context, filter.State) (model.TransactionPage, error) {
		return model.TransactionPage{Transactions: records("a", "b")}, nil
	}
	res = Fetch(context.Background(), q, req)
	assert.True(t, res.Pagination.Approximate())
	assert.Equal(t, 2, res.Pagination.Meta.Total)
}

func TestFetch_PropagatesError(t *testing.T) {
	q := api.NewMockQuerier()
	q.ListTransactionsFn = func(context.Context, filter.State) (model.TransactionPage, error) {
		return model.TransactionPage{}, &api.Error{Kind: common.ErrAuth, StatusCode: 401}
	}

	_, req := New(All(), filter.Default())
	res := Fetch(context.Background(), q, req)
	assert.True(t, common.IsAuth(res.Err))
	assert.Equal(t, req.Seq, res.Seq)
}
