package pipeline

import (
	"fmt"
	"time"
)

// Window is the calendar-month extraction interval in the reporting
// timezone: [Start, End) where End is the first instant of the next month.
type Window struct {
	Start time.Time
	End   time.Time
	Year  int
	Month time.Month
}

// MonthWindow computes the window containing ref, anchored to loc.
func MonthWindow(ref time.Time, loc *time.Location) Window {
	local := ref.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0),
		Year:  start.Year(),
		Month: start.Month(),
	}
}

// WindowFor computes the window for an explicit year and month in loc.
func WindowFor(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0),
		Year:  year,
		Month: month,
	}
}

func (w Window) String() string {
	return fmt.Sprintf("%d-%02d", w.Year, w.Month)
}
