package reconcile

import (
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Row is one task of a report.
type Row struct {
	Name  string
	Entry domain.BalanceEntry
}

// Summary holds the footer figures of a report.
type Summary struct {
	SprintRemaining domain.Duration
	SprintAllocated domain.Duration
	OtherAllocated  domain.Duration
	TotalAllocated  domain.Duration
}

// Diff is sprint allocated minus sprint remaining.
func (s Summary) Diff() domain.Duration {
	return s.SprintAllocated.Sub(s.SprintRemaining)
}

// Report is the reconciled balance of one sprint.
type Report struct {
	RunID       string
	Sprint      domain.SprintTag
	Range       domain.DateRange
	GeneratedAt time.Time
	InSprint    []Row
	Other       []Row
	Summary     Summary
	Warnings    []string
}

// Rows returns the in-sprint rows followed by the others.
func (r *Report) Rows() []Row {
	rows := make([]Row, 0, len(r.InSprint)+len(r.Other))
	rows = append(rows, r.InSprint...)
	return append(rows, r.Other...)
}

// Find looks a task up by exact name.
func (r *Report) Find(name string) (Row, bool) {
	for _, row := range r.Rows() {
		if row.Name == name {
			return row, true
		}
	}
	return Row{}, false
}

// sortInSprint orders by remaining time ascending, then name.
func sortInSprint(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := a.Entry.RemainingOrZero().Compare(b.Entry.RemainingOrZero()); c != 0 {
			return c < 0
		}
		return a.Name < b.Name
	})
}

func sortOther(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})
}

func summarize(inSprint, other []Row) Summary {
	var s Summary
	for _, row := range inSprint {
		s.SprintRemaining = s.SprintRemaining.Add(row.Entry.RemainingOrZero())
		s.SprintAllocated = s.SprintAllocated.Add(row.Entry.Allocated())
	}
	for _, row := range other {
		s.OtherAllocated = s.OtherAllocated.Add(row.Entry.Allocated())
	}
	s.TotalAllocated = s.SprintAllocated.Add(s.OtherAllocated)
	return s
}
