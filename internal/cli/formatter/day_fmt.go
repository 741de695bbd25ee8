package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/planner"
)

// FormatDay renders the blocks of one planner note and anything the parser
// could not read.
func FormatDay(plan planner.DayPlan) string {
	var b strings.Builder

	if len(plan.Blocks) == 0 {
		b.WriteString(Dim("No planner entries.") + "\n")
	} else {
		rows := make([][]string, 0, len(plan.Blocks))
		var completed, planned domain.Duration
		for _, block := range plan.Blocks {
			planned = planned.Add(block.Length())
			mark := StyleBlue.Render("○")
			if block.Completed {
				completed = completed.Add(block.Length())
				mark = StyleGreen.Render("✔")
			}
			name := StyleFg.Render(block.Name)
			if block.Linked {
				name = StyleBlue.Render(block.Name)
			}
			length := block.Length().Render(block.Length().IsNegative())
			if block.Length().IsNegative() {
				length = StyleRed.Render(length)
			}
			rows = append(rows, []string{
				mark,
				block.Start.String() + "–" + block.End.String(),
				length,
				name,
			})
		}
		b.WriteString(RenderAlignedTable(
			[]string{"", "TIME", "LENGTH", "TASK"},
			[]Align{AlignLeft, AlignRight, AlignRight, AlignLeft},
			rows,
		))
		fmt.Fprintf(&b, "\n%s %s  %s %s\n", Bold("Planned"), planned, Bold("Completed"), completed)
	}

	if len(plan.Skipped) > 0 || len(plan.Warnings) > 0 {
		b.WriteString("\n")
	}
	for _, s := range plan.Skipped {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  SKIPPED line %d (%s): %s", s.Line, s.Reason, strings.TrimSpace(s.Text))) + "\n")
	}
	for _, w := range plan.Warnings {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  WARNING line %d: %s", w.Line, w.Message)) + "\n")
	}

	return RenderBox(DayLabel(plan.Date), b.String())
}
