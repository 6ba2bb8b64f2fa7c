// Package valueobject defines derived calendar values used by the
// aggregation and navigation logic.
package valueobject

import "time"

// MonthWindow is the inclusive [Start, End] instant range of one calendar
// month. Start is the first day of the month at 00:00:00.000 and End is the
// last day of the month at 00:00:00.000 — always the day before the first
// day of the following month. Range queries treat both bounds inclusively
// at day granularity.
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// MonthWindowFor returns the month window containing the given reference
// date. The result is the same for every date within one calendar month.
func MonthWindowFor(ref time.Time) MonthWindow {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return MonthWindow{
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

// Contains reports whether the given instant falls inside the window at day
// granularity.
func (w MonthWindow) Contains(t time.Time) bool {
	day := DayOf(t)
	return !day.Before(w.Start) && !day.After(w.End)
}

// ShiftMonth returns a reference date delta calendar months away from ref.
// The day-of-month is clamped to the last valid day of the target month, so
// shifting from January 31 by +1 yields February 28 (or 29 in a leap year)
// rather than rolling over into March.
func ShiftMonth(ref time.Time, delta int) time.Time {
	firstOfTarget := time.Date(ref.Year(), ref.Month()+time.Month(delta), 1,
		ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
	day := ref.Day()
	if last := lastDayOfMonth(firstOfTarget); day > last {
		day = last
	}
	return firstOfTarget.AddDate(0, 0, day-1)
}

// DayOf returns the calendar-day key for the given instant: the same date
// with all time fields zeroed. Two instants share a day bucket iff DayOf
// returns equal values for them.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).
		AddDate(0, 1, -1).Day()
}
