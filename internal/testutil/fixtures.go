package testutil

import (
	"github.com/alexanderramin/tally/internal/domain"
)

// Task options
type TaskOption func(*domain.TaskMetadata)

func WithSprints(tags ...domain.SprintTag) TaskOption {
	return func(m *domain.TaskMetadata) {
		m.Sprints = append(m.Sprints, tags...)
	}
}

func WithRemaining(text string) TaskOption {
	return func(m *domain.TaskMetadata) {
		d := domain.MustParseDuration(text)
		m.Time.Remaining = &d
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(m *domain.TaskMetadata) {
		m.Priority = p
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(m *domain.TaskMetadata) {
		m.Status = s
	}
}

func WithIssueType(it domain.IssueType) TaskOption {
	return func(m *domain.TaskMetadata) {
		m.IssueType = it
	}
}

func WithDueDate(text string) TaskOption {
	return func(m *domain.TaskMetadata) {
		d := domain.MustParseDate(text)
		m.DueDate = &d
	}
}

func NewTestTask(name string, opts ...TaskOption) domain.TaskMetadata {
	m := domain.TaskMetadata{
		Name:   name,
		Status: domain.StatusToDo,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Block builds an open, linked planner block on date.
func Block(date, start, end, name string) domain.TimeBlock {
	return domain.TimeBlock{
		Date:   domain.MustParseDate(date),
		Start:  mustClock(start),
		End:    mustClock(end),
		Name:   name,
		Linked: true,
	}
}

// DoneBlock is Block marked completed.
func DoneBlock(date, start, end, name string) domain.TimeBlock {
	b := Block(date, start, end, name)
	b.Completed = true
	return b
}

func mustClock(s string) domain.ClockTime {
	c, err := domain.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}
