package taskmeta

import (
	"sort"

	"github.com/alexanderramin/tally/internal/domain"
)

// StatusRank returns a sort rank for a status (lower = needs attention
// sooner).
func StatusRank(s domain.TaskStatus) int {
	switch s {
	case domain.StatusInProgress:
		return 0
	case domain.StatusBlocked:
		return 1
	case domain.StatusToDo:
		return 2
	case domain.StatusDone:
		return 4
	default:
		return 3
	}
}

// priorityRank puts unset priorities after every set one.
func priorityRank(p domain.Priority) int {
	if p == domain.PriorityUnset {
		return int(domain.PriorityVeryLow) + 1
	}
	return int(p)
}

// CanonicalSort orders task notes for listing:
// 1. Status: in progress, blocked, to do, unset, done
// 2. Priority: 1 first (unset last)
// 3. Due date: earliest first (nil last)
// 4. Name: lexical ascending
// 5. Path: lexical ascending
func CanonicalSort(records []domain.TaskMetadata) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]

		if ra, rb := StatusRank(a.Status), StatusRank(b.Status); ra != rb {
			return ra < rb
		}

		if pa, pb := priorityRank(a.Priority), priorityRank(b.Priority); pa != pb {
			return pa < pb
		}

		if (a.DueDate == nil) != (b.DueDate == nil) {
			return a.DueDate != nil
		}
		if a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}

		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Path < b.Path
	})
}
