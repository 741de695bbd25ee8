package formatter

import (
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/planner"
	"github.com/stretchr/testify/assert"
)

func TestFormatDay(t *testing.T) {
	plan := planner.Parse(domain.MustParseDate("2024-02-14"),
		"- [ ] 9:00 - 10:30 [[Write report]]\n"+
			"- [x] 11:00 - 11:45 Ad-hoc Fix\n"+
			"- [ ] 9:00 - 25:00 Broken\n"+
			"- [ ] 17:00 - 16:30 Backwards\n")

	out := stripANSI(FormatDay(plan))
	assert.Contains(t, out, "WED 2024-02-14")
	assert.Contains(t, out, "9:00–10:30")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "-0:30")
	assert.Contains(t, out, "Planned 1:45  Completed 0:45")
	assert.Contains(t, out, "SKIPPED line 3 (invalid end time 25:00)")
	assert.Contains(t, out, "WARNING line 4")
}

func TestFormatDay_Empty(t *testing.T) {
	out := stripANSI(FormatDay(planner.DayPlan{Date: domain.MustParseDate("2024-02-14")}))
	assert.Contains(t, out, "No planner entries.")
}
