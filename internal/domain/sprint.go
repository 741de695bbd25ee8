package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWeek is returned for ISO week numbers the year does not have.
var ErrInvalidWeek = errors.New("invalid ISO week")

// SprintTag identifies a sprint. Tags compare by exact string equality.
type SprintTag string

func (s SprintTag) String() string { return string(s) }

// Sprint is one ISO week and the tag that names it.
type Sprint struct {
	Year  int
	Week  int
	Tag   SprintTag
	Range DateRange
}

// SprintTagFor renders the tag of an ISO week, e.g. 2024 week 7 -> "Y24W07".
func SprintTagFor(year, week int) SprintTag {
	return SprintTag(fmt.Sprintf("Y%02dW%02d", year%100, week))
}

// ISOWeeksIn returns 52 or 53.
func ISOWeeksIn(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// ISOWeekRange returns Monday through Sunday of the given ISO week.
func ISOWeekRange(year, week int) (DateRange, error) {
	if week < 1 || week > ISOWeeksIn(year) {
		return DateRange{}, fmt.Errorf("%w: %d has no week %d", ErrInvalidWeek, year, week)
	}
	// January 4th always falls in ISO week 1.
	jan4 := NewDate(year, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDays(-offset + (week-1)*7)
	return DateRange{Start: monday, End: monday.AddDays(6)}, nil
}

// SprintFor derives the tag and date range of an ISO week.
func SprintFor(year, week int) (Sprint, error) {
	rng, err := ISOWeekRange(year, week)
	if err != nil {
		return Sprint{}, err
	}
	return Sprint{Year: year, Week: week, Tag: SprintTagFor(year, week), Range: rng}, nil
}

// CurrentSprint returns the sprint containing d.
func CurrentSprint(d Date) Sprint {
	year, week := d.ISOWeek()
	s, err := SprintFor(year, week)
	if err != nil {
		// ISOWeek never yields a week outside its own year.
		panic(err)
	}
	return s
}
