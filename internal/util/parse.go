package util

import (
	"strconv"
	"strings"
)

// ParseInt parses a string to an integer, returning defaultValue if parsing fails
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return val
	}
	return defaultValue
}

// ParseOptionalInt returns nil for empty or malformed input
func ParseOptionalInt(s string) *int {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &val
}

// ParseBool accepts true/1/yes (any case); anything else is false
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
