// Package viewer implements the interactive terminal client: entry list,
// company info panel, and candlestick/volume chart.
package viewer

import (
	"fmt"
	"strings"

	"lookback/pkg/lookback"
)

// notAvailable is shown when a value is missing or zero. Zero is
// deliberately conflated with "no data", mirroring the info source which
// reports absent fundamentals as zero.
const notAvailable = "N/A"

// FormatMarketCap formats a market cap in dollars with a B or M suffix.
func FormatMarketCap(v float64) string {
	if v == 0 {
		return notAvailable
	}
	if v >= 1e9 {
		return fmt.Sprintf("$%.2fB", v/1e9)
	}
	return fmt.Sprintf("$%.2fM", v/1e6)
}

// FormatNumber formats a ratio with two decimals; the "N/A" sentinel for a
// missing value passes through unchanged.
func FormatNumber(r lookback.Ratio) string {
	if !r.Valid {
		return notAvailable
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// FormatPercentage formats a fraction as a percentage with two decimals.
func FormatPercentage(v float64) string {
	if v == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatPrice formats a dollar price with two decimals.
func FormatPrice(v float64) string {
	if v == 0 {
		return notAvailable
	}
	return fmt.Sprintf("$%.2f", v)
}

// FormatVolume formats a share count with comma separators.
func FormatVolume(n int64) string {
	if n == 0 {
		return notAvailable
	}
	return formatInt(n)
}

// formatInt formats an integer with comma separators.
func formatInt(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var b strings.Builder
		start := len(s) % 3
		if start > 0 {
			b.WriteString(s[:start])
		}
		for i := start; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
