package domain

import "fmt"

// Priority is the task urgency carried in task notes. Notes store it as a
// number where 1 is the most urgent.
type Priority int

const (
	PriorityUnset Priority = iota
	PriorityVeryHigh
	PriorityHigh
	PriorityMedium
	PriorityLow
	PriorityVeryLow
)

// PriorityFromNumber maps the 1-5 note encoding to a Priority.
func PriorityFromNumber(n int) (Priority, error) {
	if n < 1 || n > 5 {
		return PriorityUnset, fmt.Errorf("priority must be between 1 and 5, got %d", n)
	}
	return Priority(n), nil
}

// Number is the 1-5 note encoding, 0 when unset.
func (p Priority) Number() int { return int(p) }

func (p Priority) String() string {
	switch p {
	case PriorityVeryHigh:
		return "very high"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	case PriorityVeryLow:
		return "very low"
	default:
		return "unset"
	}
}

type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusBlocked    TaskStatus = "Blocked"
	StatusDone       TaskStatus = "Done"
)

// ValidTaskStatuses is the canonical set of accepted status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	StatusToDo: true, StatusInProgress: true, StatusBlocked: true, StatusDone: true,
}

type IssueType string

const (
	IssueStory   IssueType = "Story"
	IssueTask    IssueType = "Task"
	IssueSubTask IssueType = "Sub-task"
	IssueEpic    IssueType = "Epic"
)

// ValidIssueTypes is the canonical set of accepted issue type strings.
var ValidIssueTypes = map[IssueType]bool{
	IssueStory: true, IssueTask: true, IssueSubTask: true, IssueEpic: true,
}
