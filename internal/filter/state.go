// Package filter holds the filter, sort and pagination state of a transaction
// listing and its query-string codec.
package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// Defaults applied when a field is missing from a query string.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	DefaultSort  = "created_at"
	DefaultOrder = OrderDesc

	OrderAsc  = "asc"
	OrderDesc = "desc"

	// DateLayout is the format of start_date and end_date.
	DateLayout = "2006-01-02"
)

// AllowedLimits are the page sizes offered to the user.
var AllowedLimits = []int{10, 20, 50, 100}

// SortFields are the columns the backend can sort by.
var SortFields = []string{
	"created_at",
	"payment_time",
	"order_amount",
	"status",
	"custom_order_id",
	"student_info.name",
}

// State is the client-held query, sort and pagination record of a listing.
type State struct {
	Page      int    `validate:"min=1"`
	Limit     int    `validate:"oneof=10 20 50 100"`
	Sort      string `validate:"required,oneof=created_at payment_time order_amount status custom_order_id student_info.name"`
	Order     string `validate:"oneof=asc desc"`
	Status    string `validate:"omitempty,oneof=created pending success failed cancelled"`
	SchoolID  string
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

// Default returns the state a listing starts from when nothing is seeded.
func Default() State {
	return State{
		Page:  DefaultPage,
		Limit: DefaultLimit,
		Sort:  DefaultSort,
		Order: DefaultOrder,
	}
}

// HasActiveFilters reports whether any narrowing filter is set.
func (s State) HasActiveFilters() bool {
	return s.Status != "" || s.SchoolID != "" || s.StartDate != "" || s.EndDate != ""
}

// Cleared resets the narrowing filters and the sort while keeping the page size.
func (s State) Cleared() State {
	cleared := Default()
	cleared.Limit = s.Limit
	return cleared
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the state before it is dispatched. A failure matches
// common.ErrValidation and must not reach the server.
func (s State) Validate() error {
	if err := validatorInstance().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return common.Validation("%s: invalid value %q", fieldKey(fe.Field()), fmt.Sprint(fe.Value()))
		}
		return common.Validation("%v", err)
	}

	if s.StartDate != "" && s.EndDate != "" {
		start, _ := time.Parse(DateLayout, s.StartDate)
		end, _ := time.Parse(DateLayout, s.EndDate)
		if end.Before(start) {
			return common.Validation("end_date %s is before start_date %s", s.EndDate, s.StartDate)
		}
	}
	return nil
}

// Sanitized returns s with each invalid field reset to its default, keeping
// the valid ones. A date range that ends before it starts is dropped.
func (s State) Sanitized() State {
	def := Default()

	var verrs validator.ValidationErrors
	if err := validatorInstance().Struct(s); errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Page":
				s.Page = def.Page
			case "Limit":
				s.Limit = def.Limit
			case "Sort":
				s.Sort = def.Sort
			case "Order":
				s.Order = def.Order
			case "Status":
				s.Status = ""
			case "StartDate":
				s.StartDate = ""
			case "EndDate":
				s.EndDate = ""
			}
		}
	}

	if s.Validate() != nil {
		s.StartDate, s.EndDate = "", ""
	}
	return s
}

func fieldKey(field string) string {
	switch field {
	case "SchoolID":
		return "school_id"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	}
	return strings.ToLower(field)
}

// Values returns the server query parameters for s. Scoped listings carry the
// school in the path, so school_id is left out.
func (s State) Values(scoped bool) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("limit", strconv.Itoa(s.Limit))
	v.Set("sort", s.Sort)
	v.Set("order", s.Order)
	if s.Status != "" {
		v.Set("status", s.Status)
	}
	if s.SchoolID != "" && !scoped {
		v.Set("school_id", s.SchoolID)
	}
	if s.StartDate != "" {
		v.Set("start_date", s.StartDate)
	}
	if s.EndDate != "" {
		v.Set("end_date", s.EndDate)
	}
	return v
}

// Patch is a partial change to a State. Nil fields are left untouched; a
// pointer to the empty string clears the field.
type Patch struct {
	Page      *int
	Limit     *int
	Sort      *string
	Order     *string
	Status    *string
	SchoolID  *string
	StartDate *string
	EndDate   *string
}

// Apply merges p into s. Any change that does not set Page explicitly sends
// the listing back to the first page.
func (s State) Apply(p Patch) State {
	next := s
	if p.Limit != nil {
		next.Limit = *p.Limit
	}
	if p.Sort != nil {
		next.Sort = *p.Sort
	}
	if p.Order != nil {
		next.Order = *p.Order
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.SchoolID != nil {
		next.SchoolID = *p.SchoolID
	}
	if p.StartDate != nil {
		next.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		next.EndDate = *p.EndDate
	}

	if p.Page != nil {
		next.Page = *p.Page
	} else {
		next.Page = DefaultPage
	}
	return next
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// NextStatus cycles through "" and every status in display order.
func NextStatus(current string) string {
	if current == "" {
		return string(model.Statuses[0])
	}
	for i, st := range model.Statuses {
		if string(st) == current {
			if i+1 < len(model.Statuses) {
				return string(model.Statuses[i+1])
			}
			return ""
		}
	}
	return ""
}

// NextLimit returns the page size after current in AllowedLimits.
func NextLimit(current int) int {
	for i, l := range AllowedLimits {
		if l == current {
			return AllowedLimits[(i+1)%len(AllowedLimits)]
		}
	}
	return DefaultLimit
}

// NextSort returns the sort column after current in SortFields.
func NextSort(current string) string {
	for i, f := range SortFields {
		if f == current {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return DefaultSort
}
