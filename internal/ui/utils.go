package ui

import (
	"regexp"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape sequences from rendered output, used for
// no-color rendering and for content assertions in tests.
func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}
