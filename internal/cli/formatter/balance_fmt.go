package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/reconcile"
)

const balanceBarWidth = 12

var balanceAlign = []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft}

// FormatBalance renders a sprint report as a boxed CLI view.
func FormatBalance(report *reconcile.Report) string {
	return RenderBox("Sprint "+string(report.Sprint), BalanceBody(report, balanceBarWidth))
}

// BalanceBody renders the report tables, summary and warnings without the
// surrounding box.
func BalanceBody(report *reconcile.Report, barWidth int) string {
	var b strings.Builder
	b.WriteString(Dim(DayLabel(report.Range.Start)+" – "+DayLabel(report.Range.End)) + "\n\n")

	scale := barScale(report)
	headers := []string{"TASK", "LEFT", "DONE", "OPEN", "ALLOCATED", "DIFF", "TIME"}

	if len(report.InSprint) == 0 {
		b.WriteString(Dim("No task notes are tagged "+string(report.Sprint)+".") + "\n")
	} else {
		rows := make([][]string, 0, len(report.InSprint))
		for _, row := range report.InSprint {
			e := row.Entry
			left := e.RemainingOrZero().String()
			if e.Remaining == nil {
				left = Dim(left)
			}
			rows = append(rows, []string{
				Bold(row.Name),
				left,
				e.Completed.String(),
				e.Uncompleted.String(),
				e.Allocated().String(),
				Diff(e.Diff()),
				RenderTimeBar(e, scale, barWidth),
			})
		}
		b.WriteString(RenderAlignedTable(headers, balanceAlign, rows))
	}

	if len(report.Other) > 0 {
		b.WriteString("\n" + Header("Outside the sprint") + "\n")
		rows := make([][]string, 0, len(report.Other))
		for _, row := range report.Other {
			e := row.Entry
			name := StyleFg.Render(row.Name)
			if !e.HasMetadata {
				name += Dim(" (no note)")
			}
			rows = append(rows, []string{
				name,
				Dim(e.RemainingOrZero().String()),
				e.Completed.String(),
				e.Uncompleted.String(),
				e.Allocated().String(),
				Dim("--"),
				RenderTimeBar(e, scale, barWidth),
			})
		}
		b.WriteString(RenderAlignedTable(headers, balanceAlign, rows))
	}

	b.WriteString("\n" + formatSummary(report.Summary))

	if len(report.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range report.Warnings {
			b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
		}
	}
	return b.String()
}

func formatSummary(s reconcile.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s remaining %s  allocated %s  diff %s\n",
		Bold("Sprint"), s.SprintRemaining, s.SprintAllocated, Diff(s.Diff()))
	fmt.Fprintf(&b, "%s  allocated %s\n", Bold("Other"), s.OtherAllocated)
	fmt.Fprintf(&b, "%s  allocated %s\n", Bold("Total"), s.TotalAllocated)
	return b.String()
}

// barScale is the largest span any row's bar needs, so bars compare across
// rows.
func barScale(report *reconcile.Report) domain.Duration {
	var scale domain.Duration
	for _, row := range report.Rows() {
		e := row.Entry
		scale = scale.Max(e.Allocated().Max(e.RemainingOrZero()))
	}
	return scale
}
