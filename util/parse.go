package util

import (
	"strconv"
	"strings"
)

var sizeUnits = []struct {
	suffix string
	bytes  int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize reads sizes such as "1MB", "512kb" or "2048" (bytes). Anything
// else, including negative sizes, yields defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	mult := int64(1)
	for _, u := range sizeUnits {
		if n, ok := strings.CutSuffix(s, u.suffix); ok {
			s, mult = strings.TrimSpace(n), u.bytes
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return defaultBytes
	}
	return n * mult
}

// MaskSecret keeps the first visiblePrefix bytes of s for log output. Secrets
// shorter than twice the prefix are masked entirely.
func MaskSecret(s string, visiblePrefix int) string {
	if visiblePrefix <= 0 || len(s) < 2*visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
