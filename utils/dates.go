// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns whole calendar days from start to end, ignoring
// time-of-day. Negative when end is before start.
func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// ISODate formats a date as yyyy-MM-dd for storage and API payloads.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
