package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// extendedUnits are accepted by ParseDuration on top of time.ParseDuration's
var extendedUnits = []struct {
	suffix     string
	multiplier time.Duration
}{
	{"d", 24 * time.Hour},
	{"w", 7 * 24 * time.Hour},
}

// Truncate cuts s to at most length runes and appends suffix when anything was cut.
// A non-positive length disables truncation.
func Truncate(s string, length int, suffix string) string {
	if length <= 0 || utf8.RuneCountInString(s) <= length {
		return s
	}

	n := 0
	for i := range s {
		if n == length {
			return s[:i] + suffix
		}
		n++
	}
	return s
}

// ParseDuration parses a duration string.
// Supports standard Go duration units plus d (day) and w (week); a bare number means seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	for _, unit := range extendedUnits {
		if numStr, ok := strings.CutSuffix(s, unit.suffix); ok {
			if num, err := strconv.ParseFloat(numStr, 64); err == nil {
				return time.Duration(num * float64(unit.multiplier)), nil
			}
		}
	}

	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}

// FirstNonEmpty returns the first argument that is not blank
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
