package util

import "strconv"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

func ParseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Limit clamps a requested result size to (0, MaxLimit]; anything outside
// falls back to DefaultLimit.
func Limit(size int) int {
	if size <= 0 || size > MaxLimit {
		return DefaultLimit
	}
	return size
}
