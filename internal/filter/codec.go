package filter

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Encode serializes s into a query string. Empty fields and fields equal to
// their default are omitted, so Encode(Default()) is the empty string.
func Encode(s State) string {
	v := url.Values{}
	if s.Page != DefaultPage && s.Page > 0 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.Limit != DefaultLimit && s.Limit > 0 {
		v.Set("limit", strconv.Itoa(s.Limit))
	}
	if s.Sort != DefaultSort && s.Sort != "" {
		v.Set("sort", s.Sort)
	}
	if s.Order != DefaultOrder && s.Order != "" {
		v.Set("order", s.Order)
	}
	setIf(v, "status", s.Status)
	setIf(v, "school_id", s.SchoolID)
	setIf(v, "start_date", s.StartDate)
	setIf(v, "end_date", s.EndDate)
	return v.Encode()
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// Decode parses a query string into a State with typed fallbacks. A leading
// "?" is accepted and unknown keys are ignored. Malformed values are corrected
// here so they are never dispatched, and a badly escaped pair drops only
// itself.
func Decode(query string) State {
	s := Default()

	// ParseQuery keeps every pair it could unescape alongside the error.
	v, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))

	if n, err := strconv.Atoi(v.Get("page")); err == nil && n >= 1 {
		s.Page = n
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil && slices.Contains(AllowedLimits, n) {
		s.Limit = n
	}
	if sort := v.Get("sort"); sort != "" {
		s.Sort = sort
	}
	if order := strings.ToLower(v.Get("order")); order == OrderAsc || order == OrderDesc {
		s.Order = order
	}
	s.Status = v.Get("status")
	s.SchoolID = v.Get("school_id")
	s.StartDate = v.Get("start_date")
	s.EndDate = v.Get("end_date")
	return s
}

// Location renders path plus the encoded state, e.g. "/transactions?status=success".
func Location(path string, s State) string {
	if q := Encode(s); q != "" {
		return path + "?" + q
	}
	return path
}

// SplitLocation separates a location into its path and decoded state.
func SplitLocation(location string) (string, State) {
	path, query, _ := strings.Cut(location, "?")
	return path, Decode(query)
}
