package entity

import (
	"fmt"
	"time"
)

// DateLayout is the textual date format accepted and produced by the service
const DateLayout = "2006-01-02"

// MaxRangeDays is the longest inclusive span a single request may cover
const MaxRangeDays = 5

const day = 24 * time.Hour

// ParseDate parses YYYY-MM-DD text into a UTC calendar date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// DateOf drops the time of day, keeping the calendar date of t in its own location
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date as YYYY-MM-DD
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ExpandDates returns every date from start to end inclusive in ascending order.
// An inverted range yields an empty slice.
func ExpandDates(start, end time.Time) []time.Time {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return []time.Time{}
	}

	dates := make([]time.Time, 0, DaysInclusive(start, end))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// DaysInclusive counts the calendar days between start and end, both included.
// Returns 0 when start is after end.
func DaysInclusive(start, end time.Time) int {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start)/day) + 1
}

// DateRange is a validated inclusive span of calendar dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive length of the range
func (r DateRange) Days() int {
	return DaysInclusive(r.Start, r.End)
}

// Dates expands the range into its individual dates
func (r DateRange) Dates() []time.Time {
	return ExpandDates(r.Start, r.End)
}

func (r DateRange) String() string {
	return FormatDate(r.Start) + ".." + FormatDate(r.End)
}
