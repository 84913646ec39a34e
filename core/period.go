package core

import (
	"time"

	"github.com/drojas/deskmetrics/schema"
)

// RollingPair returns the current and previous calendar months relative to
// the given moment. January rolls back to December of the prior year.
func RollingPair(now time.Time) (current, previous schema.MonthRange) {
	current = schema.MonthRange{
		Label: schema.MonthLabel(now.Month()),
		Year:  now.Year(),
		Month: now.Month(),
	}
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	previous = schema.MonthRange{
		Label: schema.MonthLabel(prev.Month()),
		Year:  prev.Year(),
		Month: prev.Month(),
	}
	return current, previous
}

// WeekFor returns the index of the week range containing d, or -1 when d
// falls outside every range. The first containing range wins.
func WeekFor(weeks []schema.WeekRange, d time.Time) int {
	for i, w := range weeks {
		if w.Contains(d) {
			return i
		}
	}
	return -1
}

// MonthFor returns the index of the month range containing d, or -1.
func MonthFor(months []schema.MonthRange, d time.Time) int {
	for i, m := range months {
		if m.Contains(d) {
			return i
		}
	}
	return -1
}

// DaysOpen returns the whole number of days a ticket has been open,
// rounding any partial day up.
func DaysOpen(opened, now time.Time) int {
	if now.Before(opened) {
		return 0
	}
	hours := now.Sub(opened).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}

// weekOfMonth computes the chart bucket for a date inside its own month,
// anchored on the weekday of the first of the month.
func weekOfMonth(d time.Time) int {
	week := (d.Day() - int(d.Weekday()) + 1) / 7
	if (d.Day()-int(d.Weekday())+1)%7 > 0 {
		week++
	}
	return week + 1
}
