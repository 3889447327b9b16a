// Package sanitizer normalizes free-text input before it is validated and stored.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims s and collapses every run of whitespace into a single space.
func TrimAndNormalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DisplayName normalizes whitespace and drops control and format characters, so that a
// name renders on one line.
func DisplayName(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (unicode.IsControl(r) && !unicode.IsSpace(r)) || unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
	return TrimAndNormalize(cleaned)
}
