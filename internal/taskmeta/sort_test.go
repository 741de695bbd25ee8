package taskmeta

import (
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalSort(t *testing.T) {
	due := func(s string) *domain.Date {
		d := domain.MustParseDate(s)
		return &d
	}
	records := []domain.TaskMetadata{
		{Name: "Done", Status: domain.StatusDone, Priority: domain.PriorityVeryHigh},
		{Name: "Todo low", Status: domain.StatusToDo, Priority: domain.PriorityLow},
		{Name: "Todo unset", Status: domain.StatusToDo},
		{Name: "Todo high late", Status: domain.StatusToDo, Priority: domain.PriorityHigh, DueDate: due("2024-03-01")},
		{Name: "Todo high soon", Status: domain.StatusToDo, Priority: domain.PriorityHigh, DueDate: due("2024-02-15")},
		{Name: "Todo high b", Status: domain.StatusToDo, Priority: domain.PriorityHigh},
		{Name: "Todo high a", Status: domain.StatusToDo, Priority: domain.PriorityHigh},
		{Name: "Blocked", Status: domain.StatusBlocked},
		{Name: "Doing", Status: domain.StatusInProgress, Priority: domain.PriorityVeryLow},
		{Name: "No status"},
	}

	CanonicalSort(records)

	assert.Equal(t, []string{
		"Doing",
		"Blocked",
		"Todo high soon",
		"Todo high late",
		"Todo high a",
		"Todo high b",
		"Todo low",
		"Todo unset",
		"No status",
		"Done",
	}, names(records))
}

func TestCanonicalSort_SameNameByPath(t *testing.T) {
	records := []domain.TaskMetadata{
		{Name: "Task", Path: "b/Task.md"},
		{Name: "Task", Path: "a/Task.md"},
	}
	CanonicalSort(records)
	assert.Equal(t, "a/Task.md", records[0].Path)
}

func TestCanonicalSort_FixtureDefaults(t *testing.T) {
	records := []domain.TaskMetadata{
		testutil.NewTestTask("Shipped", testutil.WithStatus(domain.StatusDone)),
		testutil.NewTestTask("Queued"),
		testutil.NewTestTask("Started", testutil.WithStatus(domain.StatusInProgress)),
	}
	CanonicalSort(records)
	assert.Equal(t, []string{"Started", "Queued", "Shipped"}, names(records))
}
