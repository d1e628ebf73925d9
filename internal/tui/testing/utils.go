package testing

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var whitespace = regexp.MustCompile(`\s+`)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Plain strips styling and collapses whitespace runs, so table padding and
// wrapped lines compare as single spaces.
func Plain(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(StripANSI(s), " "))
}

// ContainsInOrder checks if the output contains all specified strings in order.
func ContainsInOrder(output string, expected ...string) bool {
	lastIndex := 0
	for _, exp := range expected {
		index := strings.Index(output[lastIndex:], exp)
		if index == -1 {
			return false
		}
		lastIndex += index + len(exp)
	}
	return true
}
