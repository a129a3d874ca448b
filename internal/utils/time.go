package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today returns the current calendar date as YYYY-MM-DD (UTC).
func Today() string {
	return NowUTC().Format(layoutDate)
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// AddDays shifts a YYYY-MM-DD date string by n days. Invalid input returns
// the empty string.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// CompactDate renders YYYY-MM-DD as YYYYMMDD, the receipt-number date part.
func CompactDate(date string) string {
	return strings.ReplaceAll(strings.TrimSpace(date), "-", "")
}
