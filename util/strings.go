package util

import "unicode/utf8"

// Preview shortens s to at most n runes for log output, marking the cut with "...".
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
