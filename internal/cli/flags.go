package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/pflag"
)

// weekFlags selects a sprint by ISO year and week. Unset flags fall back to
// the configured week, then to the current one.
type weekFlags struct {
	year int
	week int
}

func (f *weekFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.year, "year", 0, "ISO year of the sprint (default: configured or current)")
	fs.IntVar(&f.week, "week", 0, "ISO week of the sprint (default: configured or current)")
}

func (f weekFlags) sprint(app *App) (domain.Sprint, error) {
	year, week := app.Config.ActiveWeek(app.today())
	if f.year > 0 {
		year = f.year
	}
	if f.week > 0 {
		week = f.week
	}
	return domain.SprintFor(year, week)
}

// rangeFlags selects an inclusive date range, defaulting to a sprint week.
type rangeFlags struct {
	weeks weekFlags
	from  string
	to    string
}

func (f *rangeFlags) register(fs *pflag.FlagSet) {
	f.weeks.register(fs)
	fs.StringVar(&f.from, "from", "", "First day, YYYY-MM-DD (default: start of the sprint week)")
	fs.StringVar(&f.to, "to", "", "Last day, YYYY-MM-DD (default: end of the sprint week)")
}

func (f rangeFlags) dateRange(app *App) (domain.DateRange, error) {
	sprint, err := f.weeks.sprint(app)
	if err != nil {
		return domain.DateRange{}, err
	}
	rng := sprint.Range
	if f.from != "" {
		if rng.Start, err = domain.ParseDate(f.from); err != nil {
			return domain.DateRange{}, fmt.Errorf("--from: %w", err)
		}
	}
	if f.to != "" {
		if rng.End, err = domain.ParseDate(f.to); err != nil {
			return domain.DateRange{}, fmt.Errorf("--to: %w", err)
		}
	}
	return domain.NewDateRange(rng.Start, rng.End)
}
