package utils

import (
	"strings"
)

// TrimOrEmpty strips surrounding whitespace; blank input becomes "".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
