package stats

import "time"

// Window is a closed interval of time; both bounds are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// MonthWindow returns the calendar month containing now. The end is found by
// overshooting well past any month length, truncating back to day 1 of the
// following month and stepping one second back, which handles 28/29/30/31
// day months without a table.
func MonthWindow(now time.Time) Window {
	start := monthStart(now)
	over := start.AddDate(0, 0, 32)
	end := monthStart(over).Add(-time.Second)
	return Window{Start: start, End: end}
}

// PrevMonthWindow returns the calendar month immediately before now's.
func PrevMonthWindow(now time.Time) Window {
	start := monthStart(monthStart(now).AddDate(0, 0, -1))
	end := monthStart(now).Add(-time.Second)
	return Window{Start: start, End: end}
}

// UpcomingWindow is the next seven days starting at now.
func UpcomingWindow(now time.Time) Window {
	return Window{Start: now, End: now.AddDate(0, 0, 7)}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
