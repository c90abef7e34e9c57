package domain

import "time"

// TimeLayout is the canonical timestamp layout: ISO 8601, UTC, fixed
// millisecond precision and a trailing Z.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in UTC using TimeLayout. Sub-millisecond digits are
// truncated.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// GetTime returns the current time plus offset, formatted with FormatTime.
func GetTime(offset time.Duration) string {
	return FormatTime(time.Now().Add(offset))
}
