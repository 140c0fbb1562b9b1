package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCount renders an integer with thousands separators, the way the
// member/casual metric cards display trip counts.
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, ",")
	if negative {
		out = "-" + out
	}
	return out
}

// FormatMinutes renders a duration metric with one decimal, e.g. "15.0 min".
func FormatMinutes(v float64) string {
	return fmt.Sprintf("%.1f min", v)
}

// FormatPercent renders a percentage metric with one decimal, e.g. "50.0%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
