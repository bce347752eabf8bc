package timeutil

import "time"

// NowUTC returns the current time in UTC, the timezone every generated
// document and analytics event is stamped in.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDate renders a time as YYYY-MM-DD, the wire format for departure
// dates.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatClock renders a time as HH:MM for schedule display.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
