package formatter

import (
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

const (
	completedBlock = "█"
	plannedBlock   = "▓"
	shortfallBlock = "░"
)

// RenderTimeBar draws a task's time as [███▓▓░░ ]: completed blocks, then
// planned but open blocks, then the part of the remaining estimate that no
// block covers yet. The bar spans whichever of allocated or remaining is
// larger; scale is the duration a full bar stands for, or zero to fill the
// bar with this task alone.
func RenderTimeBar(entry domain.BalanceEntry, scale domain.Duration, width int) string {
	if width < 2 {
		width = 2
	}
	completed := max(entry.Completed.WholeMinutes(), 0)
	open := max(entry.Uncompleted.WholeMinutes(), 0)
	shortfall := max(entry.RemainingOrZero().WholeMinutes()-completed-open, 0)

	total := scale.WholeMinutes()
	if total <= 0 {
		total = completed + open + shortfall
	}
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	cells := func(minutes int64) int {
		return int(minutes * int64(width) / total)
	}
	nCompleted := min(cells(completed), width)
	nOpen := min(cells(completed+open)-nCompleted, width-nCompleted)
	nShort := min(cells(completed+open+shortfall)-nCompleted-nOpen, width-nCompleted-nOpen)
	nEmpty := width - nCompleted - nOpen - nShort

	return "[" +
		StyleGreen.Render(strings.Repeat(completedBlock, nCompleted)) +
		StyleYellow.Render(strings.Repeat(plannedBlock, nOpen)) +
		StyleRed.Render(strings.Repeat(shortfallBlock, nShort)) +
		strings.Repeat(" ", nEmpty) +
		"]"
}
