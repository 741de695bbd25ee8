// Package reconcile compares the time planned for tasks in day notes with the
// remaining estimates of a sprint's task notes.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/schedule"
	"github.com/alexanderramin/tally/internal/taskmeta"
	"github.com/alexanderramin/tally/internal/vault"
	"github.com/google/uuid"
)

// MetadataStore enumerates task notes.
type MetadataStore interface {
	LoadTasks(ctx context.Context) (vault.TaskLoad, error)
}

// Reconciler produces balance reports. It holds no state between runs.
type Reconciler struct {
	days     schedule.DaySource
	store    MetadataStore
	observer Observer
	workers  int
	now      func() time.Time
}

// Option configures a Reconciler.
type Option func(*Reconciler)

func WithObserver(o Observer) Option {
	return func(r *Reconciler) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithWorkers bounds concurrent day reads.
func WithWorkers(n int) Option {
	return func(r *Reconciler) { r.workers = n }
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}

func New(days schedule.DaySource, store MetadataStore, opts ...Option) *Reconciler {
	r := &Reconciler{
		days:     days,
		store:    store,
		observer: NoopObserver{},
		workers:  schedule.DefaultWorkers,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReconcileWeek reports on the sprint of an ISO week: tag Y{yy}W{ww} over
// Monday to Sunday.
func (r *Reconciler) ReconcileWeek(ctx context.Context, year, week int) (*Report, error) {
	sprint, err := domain.SprintFor(year, week)
	if err != nil {
		return nil, err
	}
	return r.Reconcile(ctx, sprint.Tag, sprint.Range)
}

// Reconcile loads the task notes, aggregates the day notes of rng and merges
// both into a report. Unreadable notes become warnings on the report; only
// a failure to enumerate the notes at all, or cancellation, is an error.
func (r *Reconciler) Reconcile(ctx context.Context, tag domain.SprintTag, rng domain.DateRange) (report *Report, err error) {
	start := r.now()
	runID := uuid.NewString()
	defer func() {
		event := RunEvent{
			RunID:     runID,
			Sprint:    tag,
			Range:     rng,
			Duration:  r.now().Sub(start),
			Err:       err,
			StartedAt: start,
		}
		if report != nil {
			event.InSprint = len(report.InSprint)
			event.Other = len(report.Other)
			event.Warnings = len(report.Warnings)
		}
		r.observer.ObserveRun(ctx, event)
	}()

	load, err := r.store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading task notes: %w", err)
	}
	sched, err := schedule.Aggregate(ctx, r.days, rng, schedule.WithWorkers(r.workers))
	if err != nil {
		return nil, err
	}

	inSprint, other := Merge(load.Tasks, tag, sched)
	report = &Report{
		RunID:       runID,
		Sprint:      tag,
		Range:       rng,
		GeneratedAt: start,
		InSprint:    inSprint,
		Other:       other,
		Summary:     summarize(inSprint, other),
		Warnings:    collectWarnings(load, sched),
	}
	return report, nil
}

// TotalsSource exposes the per-task totals of an aggregation.
type TotalsSource interface {
	TotalFor(name string) (domain.TaskTimeTotals, bool)
	Names() []string
}

// Merge builds the sorted in-sprint and other rows. Every task of the sprint
// gets a row even without planned time; every planned task outside the
// sprint gets a row in other. A name appears at most once across both lists.
func Merge(tasks []domain.TaskMetadata, tag domain.SprintTag, totals TotalsSource) (inSprint, other []Row) {
	sprintTasks := taskmeta.FilterBySprint(tasks, tag)
	byName := taskmeta.Index(tasks)

	covered := make(map[string]bool, len(sprintTasks))
	for _, task := range sprintTasks {
		if covered[task.Name] {
			continue
		}
		covered[task.Name] = true

		entry := domain.BalanceEntry{
			InSprint:    true,
			HasMetadata: true,
			Remaining:   task.Time.Remaining,
		}
		if t, ok := totals.TotalFor(task.Name); ok {
			entry.Completed = t.Completed
			entry.Uncompleted = t.Uncompleted
		}
		inSprint = append(inSprint, Row{Name: task.Name, Entry: entry})
	}

	for _, name := range totals.Names() {
		if covered[name] {
			continue
		}
		t, _ := totals.TotalFor(name)
		_, known := byName[name]
		other = append(other, Row{Name: name, Entry: domain.BalanceEntry{
			HasMetadata: known,
			Completed:   t.Completed,
			Uncompleted: t.Uncompleted,
		}})
	}

	sortInSprint(inSprint)
	sortOther(other)
	return inSprint, other
}

func collectWarnings(load vault.TaskLoad, sched *schedule.Schedule) []string {
	var warnings []string
	for _, f := range sched.Failures() {
		warnings = append(warnings, fmt.Sprintf("day %s could not be read: %v", f.Date, f.Err))
	}
	for _, f := range load.Failures {
		warnings = append(warnings, fmt.Sprintf("task note %s skipped: %v", f.Path, f.Err))
	}
	for _, name := range taskmeta.Duplicates(load.Tasks) {
		warnings = append(warnings, fmt.Sprintf("task name %q is used by more than one note; the first one found is used", name))
	}
	for _, d := range sched.Diagnostics() {
		for _, s := range d.Skipped {
			warnings = append(warnings, fmt.Sprintf("day %s line %d skipped (%s): %s", d.Date, s.Line, s.Reason, s.Text))
		}
		for _, w := range d.Warnings {
			warnings = append(warnings, fmt.Sprintf("day %s line %d: %s", d.Date, w.Line, w.Message))
		}
	}
	return warnings
}
