package pitui

import (
	"github.com/charmbracelet/x/ansi"
)

// VisibleWidth returns the terminal display width of a string, ignoring ANSI
// escape sequences and accounting for wide characters.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// Truncate truncates s to at most maxWidth visible columns, appending tail
// (e.g. "...") if truncation occurred. Escape sequences are preserved.
func Truncate(s string, maxWidth int, tail string) string {
	return ansi.Truncate(s, maxWidth, tail)
}

// Strip removes all ANSI escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}
