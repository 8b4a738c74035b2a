package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-web/apps"
	"github.com/trezcool/masomo-web/core/dates"
)

func (cli *commandLine) runDate(cmd string, args []string) error {
	fs := cli.newFlagSet("date " + cmd)

	switch cmd {
	case "info":
		date := fs.String("date", "", "The date: YYYY-MM-DD, an RFC 3339 datetime or Unix milliseconds.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		t, err := cli.parseDate("date", *date)
		if err != nil {
			return err
		}
		cli.dateInfo(t)
		return nil
	case "age":
		birth := fs.String("birth", "", "The birth date.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		t, err := cli.parseDate("birth", *birth)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cli.out, cli.clock.Age(t))
		return nil
	case "diff":
		from := fs.String("from", "", "The first date.")
		to := fs.String("to", "", "The second date.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		a, err := cli.parseDate("from", *from)
		if err != nil {
			return err
		}
		b, err := cli.parseDate("to", *to)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cli.out, "days:  %d\n", dates.DiffInDays(a, b))
		_, _ = fmt.Fprintf(cli.out, "hours: %d\n", dates.DiffInHours(a, b))
		return nil
	case "shift":
		date := fs.String("date", "", "The date to shift.")
		days := fs.Int("days", 0, "Days to add (negative to subtract).")
		months := fs.Int("months", 0, "Months to add (negative to subtract).")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		t, err := cli.parseDate("date", *date)
		if err != nil {
			return err
		}
		t = shift(t, *days, *months)
		_, _ = fmt.Fprintf(cli.out, "%s (%s)\n", dates.FormatDate(t), t.Format(time.RFC3339))
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

// parseDate reads a flag value; digits only are Unix milliseconds.
func (cli *commandLine) parseDate(arg, v string) (time.Time, error) {
	var in interface{} = v
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		in = ms
	}
	t, err := cli.clock.Parse(in)
	if err != nil {
		if errors.Cause(err) == dates.ErrNullDate {
			return time.Time{}, apps.NewArgumentError(arg, "a date is required")
		}
		return time.Time{}, apps.NewArgumentError(arg, "%q is not a valid date", v)
	}
	return t, nil
}

func shift(t time.Time, days, months int) time.Time {
	switch {
	case months > 0:
		t = dates.AddMonths(t, months)
	case months < 0:
		t = dates.SubtractMonths(t, -months)
	}
	switch {
	case days > 0:
		t = dates.AddDays(t, days)
	case days < 0:
		t = dates.SubtractDays(t, -days)
	}
	return t
}

func (cli *commandLine) dateInfo(t time.Time) {
	rows := []struct {
		label string
		value interface{}
	}{
		{"date", dates.FormatDate(t)},
		{"input", cli.clock.FormatForInput(t)},
		{"day", fmt.Sprintf("%s (%s)", dates.DayName(t, false), dates.DayName(t, true))},
		{"month", fmt.Sprintf("%s (%s)", dates.MonthName(t, false), dates.MonthName(t, true))},
		{"today", cli.clock.IsToday(t)},
		{"yesterday", cli.clock.IsYesterday(t)},
		{"past", cli.clock.IsPast(t)},
		{"future", cli.clock.IsFuture(t)},
		{"day range", span(dates.StartOfDay(t), dates.EndOfDay(t))},
		{"week", span(dates.StartOfWeek(t), dates.EndOfWeek(t))},
		{"month range", span(dates.StartOfMonth(t), dates.EndOfMonth(t))},
		{"this month", dates.IsBetween(cli.clock.Now(), dates.StartOfMonth(t), dates.EndOfDay(dates.EndOfMonth(t)))},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(cli.out, "%-12s %v\n", r.label+":", r.value)
	}
}

func span(start, end time.Time) string {
	return start.Format(time.RFC3339) + " .. " + end.Format(time.RFC3339)
}
