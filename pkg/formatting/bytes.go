// Package formatting converts byte sizes between counts and strings like "1MB".
package formatting

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Sizes are base-1024.
var units = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders n with the largest unit that keeps the value at least 1.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	size := float64(n)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes reads sizes such as "512", "64KB", "1.5 mb". A missing unit
// means bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})

	num, unit := s, ""
	if split >= 0 {
		num, unit = s[:split], strings.TrimSpace(s[split:])
	}
	if num == "" {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	if unit == "" {
		return int64(value), nil
	}
	for i, u := range units {
		if strings.EqualFold(unit, u) {
			return int64(value * float64(int64(1)<<(10*i))), nil
		}
	}
	return 0, fmt.Errorf("unknown byte size unit %q", unit)
}
