package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCount parses a decimal count attribute such as Entries or Count.
// Surrounding whitespace is ignored; negative values are rejected.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %q", s)
	}
	return n, nil
}

// Deref returns the pointed-to string, or fallback when p is nil.
func Deref(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

// ToBool converts query-style flags to bool.
// It accepts "1", "true", "yes" and "on" in any case.
func ToBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
