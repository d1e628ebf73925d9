package listing

// History is a back-navigation stack of locations.
type History struct {
	entries []string
	limit   int
}

// NewHistory creates a history holding at most limit entries. A limit of zero
// or less keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records location unless it equals the current entry.
func (h *History) Push(location string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == location {
		return
	}
	h.entries = append(h.entries, location)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Back drops the current entry and returns the one before it.
func (h *History) Back() (string, bool) {
	if len(h.entries) < 2 {
		return "", false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Current returns the latest entry.
func (h *History) Current() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
