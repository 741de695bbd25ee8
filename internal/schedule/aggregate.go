// Package schedule folds planner notes over a date range into per-task totals.
package schedule

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/planner"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent day reads.
const DefaultWorkers = 4

// DaySource returns the planner text of a date. A day without a note is
// reported with found=false and no error.
type DaySource interface {
	ReadDay(ctx context.Context, date domain.Date) (text string, found bool, err error)
}

// DayFailure records a day whose note could not be read.
type DayFailure struct {
	Date domain.Date
	Err  error
}

func (f DayFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Date, f.Err)
}

func (f DayFailure) Unwrap() error { return f.Err }

// DayDiagnostics carries the parser diagnostics of one day.
type DayDiagnostics struct {
	Date     domain.Date
	Skipped  []planner.SkippedLine
	Warnings []planner.Warning
}

// Schedule is the read-only result of one aggregation.
type Schedule struct {
	dates       []domain.Date
	blocks      []domain.TimeBlock
	totals      map[string]domain.TaskTimeTotals
	daysFound   int
	failures    []DayFailure
	diagnostics []DayDiagnostics
}

type options struct {
	workers int
}

// Option configures an aggregation.
type Option func(*options)

// WithWorkers sets how many days are read at once. Values below 1 read one
// day at a time.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Aggregate reads every day of rng, both ends included.
func Aggregate(ctx context.Context, src DaySource, rng domain.DateRange, opts ...Option) (*Schedule, error) {
	return AggregateDates(ctx, src, rng.Days(), opts...)
}

type dayResult struct {
	found bool
	plan  planner.DayPlan
	err   error
}

// AggregateDates reads the given dates. Reads run concurrently; folding
// happens afterwards in ascending date order, so the input order of dates
// does not affect the result. A day that fails to read is recorded in
// Failures and does not stop the others. Only context cancellation aborts.
func AggregateDates(ctx context.Context, src DaySource, dates []domain.Date, opts ...Option) (*Schedule, error) {
	o := options{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	sorted := uniqueSorted(dates)
	results := make([]dayResult, len(sorted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, date := range sorted {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, found, err := src.ReadDay(gctx, date)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				results[i] = dayResult{err: err}
				return nil
			}
			if found {
				results[i] = dayResult{found: true, plan: planner.Parse(date, text)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregating schedule: %w", err)
	}

	s := &Schedule{
		dates:  sorted,
		totals: make(map[string]domain.TaskTimeTotals),
	}
	for i, res := range results {
		switch {
		case res.err != nil:
			s.failures = append(s.failures, DayFailure{Date: sorted[i], Err: res.err})
		case res.found:
			s.daysFound++
			s.fold(res.plan)
		}
	}
	return s, nil
}

func (s *Schedule) fold(plan planner.DayPlan) {
	for _, b := range plan.Blocks {
		totals := s.totals[b.Name]
		totals.Add(b)
		s.totals[b.Name] = totals
	}
	s.blocks = append(s.blocks, plan.Blocks...)
	if len(plan.Skipped) > 0 || len(plan.Warnings) > 0 {
		s.diagnostics = append(s.diagnostics, DayDiagnostics{
			Date:     plan.Date,
			Skipped:  plan.Skipped,
			Warnings: plan.Warnings,
		})
	}
}

// TotalFor returns the totals of a task, matched by exact name.
func (s *Schedule) TotalFor(name string) (domain.TaskTimeTotals, bool) {
	t, ok := s.totals[name]
	return t, ok
}

// Names lists every task with at least one block, sorted.
func (s *Schedule) Names() []string {
	names := make([]string, 0, len(s.totals))
	for name := range s.totals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Totals returns a copy of the per-task totals.
func (s *Schedule) Totals() map[string]domain.TaskTimeTotals {
	out := make(map[string]domain.TaskTimeTotals, len(s.totals))
	for k, v := range s.totals {
		out[k] = v
	}
	return out
}

// Blocks returns every parsed block in ascending date order.
func (s *Schedule) Blocks() []domain.TimeBlock {
	return append([]domain.TimeBlock(nil), s.blocks...)
}

// Dates are the days that were requested, ascending and without duplicates.
func (s *Schedule) Dates() []domain.Date {
	return append([]domain.Date(nil), s.dates...)
}

// DaysFound counts the days that had a planner note.
func (s *Schedule) DaysFound() int { return s.daysFound }

func (s *Schedule) Failures() []DayFailure {
	return append([]DayFailure(nil), s.failures...)
}

func (s *Schedule) Diagnostics() []DayDiagnostics {
	return append([]DayDiagnostics(nil), s.diagnostics...)
}

// Allocated sums every task's allocated time.
func (s *Schedule) Allocated() domain.Duration {
	var total domain.Duration
	for _, t := range s.totals {
		total = total.Add(t.Allocated())
	}
	return total
}

func uniqueSorted(dates []domain.Date) []domain.Date {
	out := append([]domain.Date(nil), dates...)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	n := 0
	for i, d := range out {
		if i > 0 && d.Equal(out[n-1]) {
			continue
		}
		out[n] = d
		n++
	}
	return out[:n]
}
