package utils

import (
	"fmt"
	"strings"
	"time"
)

// Period identifies a reporting time range.
type Period string

const (
	PeriodToday   Period = "today"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodAll     Period = "all"
)

// ParsePeriod parses a period name. It is case-insensitive.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodToday:
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodQuarter:
		return PeriodQuarter, nil
	case PeriodYear:
		return PeriodYear, nil
	case PeriodAll, "":
		return PeriodAll, nil
	default:
		return "", fmt.Errorf("unknown period: %s (expected today, week, month, quarter, year, or all)", s)
	}
}

// Range returns the [start, end] time range the period covers, anchored
// at the given reference time. PeriodAll returns a zero start time.
func (p Period) Range(ref time.Time) (time.Time, time.Time) {
	end := ref
	dayStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	switch p {
	case PeriodToday:
		return dayStart, end
	case PeriodWeek:
		// Week starts on Monday
		offset := int(ref.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
		return dayStart.AddDate(0, 0, -offset), end
	case PeriodMonth:
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()), end
	case PeriodQuarter:
		quarterMonth := time.Month((int(ref.Month())-1)/3*3 + 1)
		return time.Date(ref.Year(), quarterMonth, 1, 0, 0, 0, 0, ref.Location()), end
	case PeriodYear:
		return time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, ref.Location()), end
	default:
		return time.Time{}, end
	}
}

// String returns the period name.
func (p Period) String() string {
	return string(p)
}
