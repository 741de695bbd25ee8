package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration is returned when text is not an H:MM duration.
var ErrInvalidDuration = errors.New("invalid duration")

// Duration is a signed span of time at minute precision. Text forms
// carry whole minutes only.
type Duration struct {
	d time.Duration
}

// Zero is the empty duration.
var Zero = Duration{}

func Minutes(n int64) Duration { return Duration{d: time.Duration(n) * time.Minute} }

// ParseDuration reads "H:MM", "H" or the empty string (zero). The sign on the
// hours segment applies to the whole value, so "-1:30" is minus ninety minutes.
func ParseDuration(text string) (Duration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Zero, nil
	}

	hoursText, minutesText, hasMinutes := strings.Cut(text, ":")
	hours, err := strconv.ParseInt(hoursText, 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
	}

	var minutes int64
	if hasMinutes {
		if minutesText == "" || strings.ContainsAny(minutesText, "+-:") {
			return Zero, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
		}
		minutes, err = strconv.ParseInt(minutesText, 10, 64)
		if err != nil {
			return Zero, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
		}
	}

	total := hours*60 + minutes
	if strings.HasPrefix(hoursText, "-") {
		total = hours*60 - minutes
	}
	return Minutes(total), nil
}

// MustParseDuration is ParseDuration for literals known to be valid.
func MustParseDuration(text string) Duration {
	d, err := ParseDuration(text)
	if err != nil {
		panic(err)
	}
	return d
}

// Render formats the duration as H:MM. With signed set, a nonzero value gets
// a leading '+' or '-'; without it the absolute value is printed.
func (d Duration) Render(signed bool) string {
	hours, minutes := d.Abs().HoursMinutes()
	text := fmt.Sprintf("%d:%02d", hours, minutes)
	if !signed || d.WholeMinutes() == 0 {
		return text
	}
	if d.IsNegative() {
		return "-" + text
	}
	return "+" + text
}

// String is the unsigned rendering.
func (d Duration) String() string { return d.Render(false) }

// WholeMinutes truncates toward zero.
func (d Duration) WholeMinutes() int64 {
	return int64(d.d / time.Minute)
}

// HoursMinutes splits the whole minutes so that hours*60+minutes equals
// WholeMinutes. Both parts carry the sign of d.
func (d Duration) HoursMinutes() (hours, minutes int64) {
	total := d.WholeMinutes()
	hours = total / 60
	minutes = total - hours*60
	return hours, minutes
}

func (d Duration) IsZero() bool       { return d.d == 0 }
func (d Duration) IsNegative() bool   { return d.d < 0 }

func (d Duration) Abs() Duration {
	if d.d < 0 {
		return Duration{d: -d.d}
	}
	return d
}

func (d Duration) Add(o Duration) Duration { return Duration{d: d.d + o.d} }
func (d Duration) Sub(o Duration) Duration { return Duration{d: d.d - o.d} }

func (d Duration) Compare(o Duration) int {
	switch {
	case d.d < o.d:
		return -1
	case d.d > o.d:
		return 1
	default:
		return 0
	}
}

// Max returns the larger of d and o.
func (d Duration) Max(o Duration) Duration {
	if o.d > d.d {
		return o
	}
	return d
}

// SumDurations adds up ds.
func SumDurations(ds ...Duration) Duration {
	var total Duration
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

// ClockTime is a time of day at minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock reads "H:MM" or "HH:MM" with hour 0-23 and minute 0-59.
func ParseClock(text string) (ClockTime, error) {
	hourText, minuteText, ok := strings.Cut(text, ":")
	if !ok || len(minuteText) != 2 || hourText == "" || len(hourText) > 2 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", text)
	}
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", text)
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", text)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// Sub returns c - other as a Duration, negative when c is earlier.
func (c ClockTime) Sub(other ClockTime) Duration {
	return Minutes(int64(c.minutesOfDay() - other.minutesOfDay()))
}

func (c ClockTime) Before(other ClockTime) bool {
	return c.minutesOfDay() < other.minutesOfDay()
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) minutesOfDay() int {
	return c.Hour*60 + c.Minute
}
