// Package strings provides common string utilities shared by the
// session store and the terminal renderer.
package strings

import "strings"

// Truncate shortens a string to n characters with ellipsis.
// If n < 4, uses n = 4 to ensure room for "...".
func Truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// TruncateRunes truncates by rune count, not byte count.
// Safer for unicode strings.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n < 4 {
		n = 4
	}
	return string(runes[:n-3]) + "..."
}

// JoinLines joins items with newlines, prefixing each line when prefix
// is non-empty. Used for clipboard URL lists.
func JoinLines(items []string, prefix string) string {
	if prefix == "" {
		return strings.Join(items, "\n")
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = prefix + it
	}
	return strings.Join(out, "\n")
}
