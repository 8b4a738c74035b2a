// Package dates computes derived facts from dates: period boundaries, calendar shifts,
// differences, ages and names.
//
// Every function returns a new time.Time; arguments are never modified.
// Functions that are not bound to a Clock work in the location of their argument.
package dates

import (
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
)

// DateLayout is the canonical date format (YYYY-MM-DD) used by date inputs.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

var locale locales.Translator = en.New()

// StartOfDay returns midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-1), t.Location())
}

// StartOfWeek returns the Sunday of t's week at the same time of day.
func StartOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// EndOfWeek returns the Saturday of t's week at the same time of day.
func EndOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, int(time.Saturday-t.Weekday()))
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location())
}

func AddDays(t time.Time, n int) time.Time      { return t.AddDate(0, 0, n) }
func SubtractDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, -n) }

// AddMonths shifts t by n calendar months. Days past the end of the target month
// overflow into the next one: Jan 31 + 1 month is Mar 3 (Mar 2 in leap years).
func AddMonths(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }

func SubtractMonths(t time.Time, n int) time.Time { return t.AddDate(0, -n, 0) }

// DiffInDays returns the number of whole days between a and b, in either order.
func DiffInDays(a, b time.Time) int {
	return int(absDiff(a, b) / day)
}

// DiffInHours returns the number of whole hours between a and b, in either order.
func DiffInHours(a, b time.Time) int {
	return int(absDiff(a, b) / time.Hour)
}

func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

// IsBetween reports whether start <= t <= end.
func IsBetween(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// FormatDate formats t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DayName returns the english weekday name of t, e.g. "Monday" or "Mon".
func DayName(t time.Time, short bool) string {
	if short {
		return locale.WeekdayAbbreviated(t.Weekday())
	}
	return locale.WeekdayWide(t.Weekday())
}

// MonthName returns the english month name of t, e.g. "January" or "Jan".
func MonthName(t time.Time, short bool) string {
	if short {
		return locale.MonthAbbreviated(t.Month())
	}
	return locale.MonthWide(t.Month())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
