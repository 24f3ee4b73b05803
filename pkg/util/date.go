package util

import (
	"strconv"
	"time"
)

// DateLayout is the calendar-date layout used by the macro data provider.
const DateLayout = "2006-01-02"

// ParseTime tries YYYY-MM-DD, RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// StartOfMonth returns midnight UTC on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthGrid returns the first-of-month timestamps from the month of from
// through the month of to, both inclusive. Empty if to precedes from.
func MonthGrid(from, to time.Time) []time.Time {
	cur := StartOfMonth(from)
	end := StartOfMonth(to)
	if cur.After(end) {
		return nil
	}
	n := (end.Year()-cur.Year())*12 + int(end.Month()) - int(cur.Month()) + 1
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, cur.AddDate(0, i, 0))
	}
	return out
}
