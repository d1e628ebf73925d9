package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisispriyanshii/edviron-frontend/internal/common"
)

func TestApply_ResetsPageUnlessPageIsSet(t *testing.T) {
	current := Default()
	current.Page = 5

	patches := map[string]Patch{
		"status":     {Status: Ptr("success")},
		"limit":      {Limit: Ptr(50)},
		"sort":       {Sort: Ptr("order_amount")},
		"order":      {Order: Ptr(OrderAsc)},
		"school":     {SchoolID: Ptr("s1")},
		"start date": {StartDate: Ptr("2024-01-01")},
		"end date":   {EndDate: Ptr("2024-01-31")},
		"clear":      {Status: Ptr("")},
		"empty":      {},
	}

	for name, p := range patches {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 1, current.Apply(p).Page)
		})
	}

	t.Run("explicit page", func(t *testing.T) {
		next := current.Apply(Patch{Page: Ptr(3)})
		assert.Equal(t, 3, next.Page)
		assert.Equal(t, current.Limit, next.Limit)
	})
}

func TestApply_MergesOnlySetFields(t *testing.T) {
	current := State{Page: 2, Limit: 50, Sort: "status", Order: "asc", Status: "failed", SchoolID: "s1"}

	next := current.Apply(Patch{Status: Ptr("")})

	assert.Equal(t, "", next.Status)
	assert.Equal(t, "s1", next.SchoolID)
	assert.Equal(t, 50, next.Limit)
	assert.Equal(t, "status", next.Sort)
	assert.Equal(t, "asc", next.Order)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*State)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*State) {}},
		{name: "all filters", mutate: func(s *State) {
			s.Status = "success"
			s.StartDate = "2024-01-01"
			s.EndDate = "2024-01-31"
		}},
		{name: "same day range", mutate: func(s *State) {
			s.StartDate = "2024-01-01"
			s.EndDate = "2024-01-01"
		}},
		{name: "page zero", mutate: func(s *State) { s.Page = 0 }, wantErr: true},
		{name: "limit not offered", mutate: func(s *State) { s.Limit = 25 }, wantErr: true},
		{name: "unknown sort", mutate: func(s *State) { s.Sort = "amount" }, wantErr: true},
		{name: "bad order", mutate: func(s *State) { s.Order = "up" }, wantErr: true},
		{name: "unknown status", mutate: func(s *State) { s.Status = "refunded" }, wantErr: true},
		{name: "malformed date", mutate: func(s *State) { s.StartDate = "01/02/2024" }, wantErr: true},
		{name: "inverted range", mutate: func(s *State) {
			s.StartDate = "2024-02-01"
			s.EndDate = "2024-01-01"
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSanitized(t *testing.T) {
	tests := []struct {
		name string
		in   State
		want State
	}{
		{
			name: "valid state is unchanged",
			in:   State{Page: 3, Limit: 50, Sort: "status", Order: "asc", Status: "failed", SchoolID: "s1"},
			want: State{Page: 3, Limit: 50, Sort: "status", Order: "asc", Status: "failed", SchoolID: "s1"},
		},
		{
			name: "bad sort keeps status",
			in:   State{Page: 1, Limit: 20, Sort: "bogus", Order: "desc", Status: "failed"},
			want: State{Page: 1, Limit: 20, Sort: "created_at", Order: "desc", Status: "failed"},
		},
		{
			name: "each bad field falls back alone",
			in:   State{Page: 0, Limit: 7, Sort: "status", Order: "up", Status: "lost", StartDate: "2024-13-01", EndDate: "2024-03-01"},
			want: State{Page: 1, Limit: 20, Sort: "status", Order: "desc", EndDate: "2024-03-01"},
		},
		{
			name: "reversed range is dropped",
			in:   State{Page: 2, Limit: 20, Sort: "created_at", Order: "desc", StartDate: "2024-03-01", EndDate: "2024-01-01"},
			want: State{Page: 2, Limit: 20, Sort: "created_at", Order: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Sanitized()
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestValues(t *testing.T) {
	s := Default()
	s.SchoolID = "s1"
	s.Status = "pending"

	all := s.Values(false)
	assert.Equal(t, "s1", all.Get("school_id"))
	assert.Equal(t, "1", all.Get("page"))
	assert.Equal(t, "20", all.Get("limit"))
	assert.Equal(t, "created_at", all.Get("sort"))
	assert.Equal(t, "desc", all.Get("order"))
	assert.Equal(t, "pending", all.Get("status"))
	assert.False(t, all.Has("start_date"))

	scoped := s.Values(true)
	assert.False(t, scoped.Has("school_id"))
}

func TestCycles(t *testing.T) {
	assert.Equal(t, "created", NextStatus(""))
	assert.Equal(t, "pending", NextStatus("created"))
	assert.Equal(t, "", NextStatus("cancelled"))

	assert.Equal(t, 50, NextLimit(20))
	assert.Equal(t, 10, NextLimit(100))

	assert.Equal(t, "payment_time", NextSort("created_at"))
	assert.Equal(t, "created_at", NextSort("student_info.name"))
}

func TestClearedKeepsPageSize(t *testing.T) {
	s := State{Page: 4, Limit: 50, Sort: "status", Order: "asc", Status: "failed", SchoolID: "s1", StartDate: "2024-01-01"}
	require.True(t, s.HasActiveFilters())

	cleared := s.Cleared()
	assert.False(t, cleared.HasActiveFilters())
	assert.Equal(t, State{Page: 1, Limit: 50, Sort: "created_at", Order: "desc"}, cleared)
}
