package common

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Truncate shortens s to at most limit runes, appending "..." when text was cut.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// OrDefault returns the dereferenced value or def when the pointer is nil or blank.
func OrDefault(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

// NilIfEmpty trims s and returns nil for empty input, for nullable columns.
func NilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func FormatBytes(size uint64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	unitIndex := 0
	value := float64(size)

	for value >= 1024 && unitIndex < len(units)-1 {
		value /= 1024
		unitIndex++
	}
	return fmt.Sprintf("%.2f%s", value, units[unitIndex])
}
