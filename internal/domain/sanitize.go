package domain

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes remote or user-supplied text safe to print on a terminal:
// escape sequences are stripped and remaining control characters dropped.
// Newlines and tabs are folded into spaces.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	stripped := ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, stripped)
}
