package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/schedule"
)

// FormatTotals renders the per-task totals of an aggregation.
func FormatTotals(s *schedule.Schedule) string {
	var b strings.Builder

	dates := s.Dates()
	if len(dates) > 0 {
		b.WriteString(Dim(fmt.Sprintf("%s – %s  ·  %d of %d days have a planner note",
			DayLabel(dates[0]), DayLabel(dates[len(dates)-1]), s.DaysFound(), len(dates))) + "\n\n")
	}

	names := s.Names()
	if len(names) == 0 {
		b.WriteString(Dim("Nothing planned in this range.") + "\n")
	} else {
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			t, _ := s.TotalFor(name)
			rows = append(rows, []string{
				Bold(name),
				t.Completed.String(),
				t.Uncompleted.String(),
				t.Allocated().String(),
			})
		}
		b.WriteString(RenderAlignedTable(
			[]string{"TASK", "DONE", "OPEN", "ALLOCATED"},
			[]Align{AlignLeft, AlignRight, AlignRight, AlignRight},
			rows,
		))
		fmt.Fprintf(&b, "\n%s %s\n", Bold("Total allocated"), s.Allocated())
	}

	failures := s.Failures()
	if len(failures) > 0 {
		b.WriteString("\n")
		for _, f := range failures {
			b.WriteString(StyleYellow.Render("  WARNING: "+f.Error()) + "\n")
		}
	}

	return RenderBox("Totals", b.String())
}
