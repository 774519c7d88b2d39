package tools

import (
	"fmt"
	"strconv"
)

// formatPercent renders a ratio already scaled to 0-100 as "96.6%".
func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// formatMinSec renders a duration in seconds as "4:45".
func formatMinSec(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// formatScore renders a 0-5 rating as "4.2/5.0".
func formatScore(v float64) string {
	return fmt.Sprintf("%.1f/5.0", v)
}

// formatDollars renders a whole currency amount with thousands separators,
// e.g. "$125,000".
func formatDollars(v int) string {
	return "$" + groupThousands(v)
}

// FormatCount renders a whole count with thousands separators, e.g. "15,420".
func FormatCount(v int) string {
	return groupThousands(v)
}

func groupThousands(v int) string {
	s := strconv.Itoa(v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
