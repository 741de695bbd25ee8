package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrInvalidDate is returned when text does not hold a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a calendar date without time of day or zone.
// The zero value is not a valid date; use ParseDate or NewDate.
type Date struct {
	t time.Time
}

// NewDate builds a Date, normalizing out-of-range months and days the way
// time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses the canonical YYYY-MM-DD form.
func ParseDate(text string) (Date, error) {
	if !datePattern.MatchString(text) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(text string) Date {
	d, err := ParseDate(text)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// ISOWeek returns the ISO 8601 year and week number the date falls in.
func (d Date) ISOWeek() (year, week int) {
	return d.t.ISOWeek()
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Next() Date     { return d.AddDays(1) }
func (d Date) Previous() Date { return d.AddDays(-1) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange returns the inclusive range [start, end]. It fails when end
// precedes start.
func NewDateRange(start, end Date) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("date range end %s precedes start %s", end, start)
	}
	return DateRange{Start: start, End: end}, nil
}

// Days lists every date in the range in ascending order.
func (r DateRange) Days() []Date {
	if r.End.Before(r.Start) {
		return nil
	}
	days := make([]Date, 0, r.Len())
	for d := r.Start; !d.After(r.End); d = d.Next() {
		days = append(days, d)
	}
	return days
}

// Len is the number of days in the range, both endpoints included.
func (r DateRange) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.t.Sub(r.Start.t).Hours()/24) + 1
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}
