package testing

import (
	"errors"
	"fmt"
	"strings"
)

// StateMatcher collects expectations about a rendered view and reports all
// misses at once. Views are compared as Plain text.
type StateMatcher struct {
	misses []error
}

// NewStateMatcher returns an empty matcher.
func NewStateMatcher() *StateMatcher {
	return &StateMatcher{}
}

func (m *StateMatcher) expect(ok bool, format string, args ...any) *StateMatcher {
	if !ok {
		m.misses = append(m.misses, fmt.Errorf(format, args...))
	}
	return m
}

// ViewContains expects text somewhere in view.
func (m *StateMatcher) ViewContains(view, text string) *StateMatcher {
	return m.expect(strings.Contains(Plain(view), text), "view is missing %q", text)
}

// ViewNotContains expects text to be absent from view.
func (m *StateMatcher) ViewNotContains(view, text string) *StateMatcher {
	return m.expect(!strings.Contains(Plain(view), text), "view unexpectedly shows %q", text)
}

// Check returns the joined misses, or nil when every expectation held.
func (m *StateMatcher) Check() error {
	return errors.Join(m.misses...)
}
