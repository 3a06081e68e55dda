// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount with thousands separators and the
// given currency symbol.
func FormatCurrency(symbol string, amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	// Format with 2 decimal places
	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := parts[0]
	decPart := parts[1]

	formatted := groupThousands(intPart)

	result := symbol + formatted + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas into an integer string every three digits.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	s = s[:n-3]

	for len(s) > 0 {
		if len(s) >= 3 {
			result = s[len(s)-3:] + "," + result
			s = s[:len(s)-3]
		} else {
			result = s + "," + result
			s = ""
		}
	}

	return result
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPnL formats P&L with an explicit sign for gains.
func FormatPnL(symbol string, pnl float64) string {
	formatted := FormatCurrency(symbol, pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatScore formats a rating score to two decimal places.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// Truncate shortens a string to maxLen, appending an ellipsis.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		if len(s) <= maxLen {
			return s
		}
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
