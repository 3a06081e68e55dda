// Package cli provides the command-line interface for the rating application.
package cli

import (
	"fmt"
	"strings"
	"time"
)

// FormatTime formats a time of day.
func FormatTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return t.Local().Format("02-Jan-2006")
}

// FormatDateTime formats a datetime.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("02-Jan-2006 15:04:05")
}

// FormatDuration formats a duration in human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}

// FormatGauge renders a score in [1, 10] as a horizontal bar.
func FormatGauge(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	filled := int((score - 1) / 9 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatStars renders a score in [1, 10] as a five-star display.
func FormatStars(score float64) string {
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	stars := int((score + 1) / 2)
	if stars < 1 {
		stars = 1
	}
	result := ""
	for i := 0; i < 5; i++ {
		if i < stars {
			result += "★"
		} else {
			result += "☆"
		}
	}
	return result
}

// FormatWeight formats a category weight percentage.
func FormatWeight(weight float64) string {
	return fmt.Sprintf("%.0f%%", weight)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PadRight pads a string to the right.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// PadLeft pads a string to the left.
func PadLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
