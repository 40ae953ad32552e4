package domain

import "time"

// TimeRange selects the trailing analytics window measured back from "now".
type TimeRange string

const (
	TimeRangeDay   TimeRange = "day"
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

// DefaultTimeRange is used whenever a caller supplies no or an unknown range.
const DefaultTimeRange = TimeRangeWeek

const day = 24 * time.Hour

// ParseTimeRange converts s into a TimeRange. The second result is false for
// anything other than day, week, month or year.
func ParseTimeRange(s string) (TimeRange, bool) {
	r := TimeRange(s)
	switch r {
	case TimeRangeDay, TimeRangeWeek, TimeRangeMonth, TimeRangeYear:
		return r, true
	}
	return DefaultTimeRange, false
}

// OrDefault returns r, or DefaultTimeRange when r is not a known range.
func (r TimeRange) OrDefault() TimeRange {
	parsed, _ := ParseTimeRange(string(r))
	return parsed
}

// Window returns the length of the range: 24h, 7d, 30d or 365d.
func (r TimeRange) Window() time.Duration {
	switch r {
	case TimeRangeDay:
		return day
	case TimeRangeMonth:
		return 30 * day
	case TimeRangeYear:
		return 365 * day
	default:
		return 7 * day
	}
}

// Start returns the inclusive lower bound of the window ending at now.
func (r TimeRange) Start(now time.Time) time.Time {
	return now.Add(-r.Window())
}
