package formatter

import (
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

const taskNameWidth = 40

// FormatTasks renders task notes as a table, in the given order.
func FormatTasks(tasks []domain.TaskMetadata, today domain.Date) string {
	if len(tasks) == 0 {
		return Dim("No task notes found.") + "\n"
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		sprints := make([]string, 0, len(t.Sprints))
		for _, s := range t.Sprints {
			sprints = append(sprints, string(s))
		}
		sprintCell := Dim("--")
		if len(sprints) > 0 {
			sprintCell = StylePurple.Render(strings.Join(sprints, ","))
		}
		issue := Dim("--")
		if t.IssueType != "" {
			issue = string(t.IssueType)
		}
		rows = append(rows, []string{
			Bold(Truncate(t.Name, taskNameWidth)),
			StatusPill(t.Status),
			PriorityBadge(t.Priority),
			issue,
			OptionalDuration(t.Time.Remaining),
			sprintCell,
			DueDate(t.DueDate, today),
		})
	}
	return RenderAlignedTable(
		[]string{"TASK", "STATUS", "PRIO", "TYPE", "LEFT", "SPRINTS", "DUE"},
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft},
		rows,
	)
}
