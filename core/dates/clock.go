package dates

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	ErrNullDate    = errors.New("null date")
	ErrInvalidDate = errors.New("invalid date")

	// layouts without a zone are read in the clock's location
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
	}
)

// Clock answers date questions relative to "now" in the school's location.
type Clock struct {
	NowFunc func() time.Time // mockable
	loc     *time.Location
}

// NewClock returns a Clock for loc; a nil loc means UTC.
func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{NowFunc: time.Now, loc: loc}
}

func (c *Clock) Location() *time.Location { return c.loc }

func (c *Clock) Now() time.Time { return c.NowFunc().In(c.loc) }

// Parse coerces a date-like value to a time in the clock's location.
// Accepted: time.Time, *time.Time, null.Time, int/int64 (Unix milliseconds) and strings in
// RFC 3339, YYYY-MM-DD (midnight UTC) or YYYY-MM-DDTHH:MM[:SS[.fff]] (clock location) form.
// Missing values give ErrNullDate and anything unreadable gives ErrInvalidDate.
func (c *Clock) Parse(v interface{}) (time.Time, error) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, ErrNullDate
	case time.Time:
		return val.In(c.loc), nil
	case *time.Time:
		if val == nil {
			return time.Time{}, ErrNullDate
		}
		return val.In(c.loc), nil
	case null.Time:
		if !val.Valid {
			return time.Time{}, ErrNullDate
		}
		return val.Time.In(c.loc), nil
	case int64:
		return time.UnixMilli(val).In(c.loc), nil
	case int:
		return time.UnixMilli(int64(val)).In(c.loc), nil
	case string:
		return c.parseString(val)
	default:
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "unsupported type %T", v)
	}
}

func (c *Clock) parseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNullDate
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(c.loc), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.In(c.loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDate, "parsing %q", s)
}

// IsToday reports whether v falls on the current calendar day.
func (c *Clock) IsToday(v interface{}) bool {
	t, err := c.Parse(v)
	if err != nil {
		return false
	}
	return sameDay(t, c.Now())
}

// IsYesterday reports whether v falls on the previous calendar day.
func (c *Clock) IsYesterday(v interface{}) bool {
	t, err := c.Parse(v)
	if err != nil {
		return false
	}
	return sameDay(t, c.Now().AddDate(0, 0, -1))
}

func (c *Clock) IsPast(v interface{}) bool {
	t, err := c.Parse(v)
	if err != nil {
		return false
	}
	return t.Before(c.Now())
}

func (c *Clock) IsFuture(v interface{}) bool {
	t, err := c.Parse(v)
	if err != nil {
		return false
	}
	return t.After(c.Now())
}

// Age returns the number of whole years since the birth date v, or 0 when v is missing or invalid.
func (c *Clock) Age(v interface{}) int {
	birth, err := c.Parse(v)
	if err != nil {
		return 0
	}
	now := c.Now()
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// FormatForInput formats v as YYYY-MM-DD in UTC, or returns "" when v is missing or invalid.
func (c *Clock) FormatForInput(v interface{}) string {
	t, err := c.Parse(v)
	if err != nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
