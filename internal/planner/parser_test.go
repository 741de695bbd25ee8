package planner

import (
	"strings"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = domain.MustParseDate("2024-02-14")

func TestParse_LinkedUncompletedEntry(t *testing.T) {
	plan := Parse(testDay, "- [ ] 9:00 - 10:30 [[Write report]]\n")

	require.Len(t, plan.Blocks, 1)
	b := plan.Blocks[0]
	assert.Equal(t, domain.ClockTime{Hour: 9}, b.Start)
	assert.Equal(t, domain.ClockTime{Hour: 10, Minute: 30}, b.End)
	assert.Equal(t, "1:30", b.Length().Render(false))
	assert.Equal(t, "Write report", b.Name)
	assert.True(t, b.Linked)
	assert.False(t, b.Completed)
	assert.True(t, b.Date.Equal(testDay))
	assert.Empty(t, plan.Skipped)
	assert.Empty(t, plan.Warnings)
}

func TestParse_CheckboxPayload(t *testing.T) {
	cases := []struct {
		line      string
		completed bool
	}{
		{"- [ ] 9:00 - 10:00 Task", false},
		{"- [x] 9:00 - 10:00 Task", true},
		{"- [X] 9:00 - 10:00 Task", true},
		{"- [>] 9:00 - 10:00 Task", true},
	}
	for _, tc := range cases {
		plan := Parse(testDay, tc.line)
		require.Len(t, plan.Blocks, 1, tc.line)
		assert.Equal(t, tc.completed, plan.Blocks[0].Completed, tc.line)
	}
}

func TestParse_WhitespaceVariants(t *testing.T) {
	text := strings.Join([]string{
		"- [x] 13:00-13:45 Code review",
		"- [ ]   8:15   -   9:00   Standup  ",
		"    - [ ] 18:00 - 18:30 Nested item",
	}, "\n")

	plan := Parse(testDay, text)
	require.Len(t, plan.Blocks, 3)
	assert.Equal(t, "Code review", plan.Blocks[0].Name)
	assert.Equal(t, "0:45", plan.Blocks[0].Length().Render(false))
	assert.Equal(t, "Standup", plan.Blocks[1].Name)
	assert.Equal(t, "Nested item", plan.Blocks[2].Name)
	assert.False(t, plan.Blocks[0].Linked)
}

func TestParse_ProseIsIgnoredSilently(t *testing.T) {
	text := "# Wednesday\n\nSome notes about the day.\n- a bullet\n- [ ] buy milk\n\n- [ ] 9:00 - 9:30 Inbox\n"

	plan := Parse(testDay, text)
	require.Len(t, plan.Blocks, 1)
	assert.Equal(t, "Inbox", plan.Blocks[0].Name)
	assert.Empty(t, plan.Skipped)
}

func TestParse_MalformedEntriesAreReported(t *testing.T) {
	text := strings.Join([]string{
		"- [ ] 9:00 Write report",
		"- [ ] 25:00 - 26:00 Night shift",
		"- [ ] 9:00 - 9:75 Bad minutes",
		"- [ ] 9:00 - 10:00 Good",
	}, "\n")

	plan := Parse(testDay, text)
	require.Len(t, plan.Blocks, 1)
	assert.Equal(t, "Good", plan.Blocks[0].Name)

	require.Len(t, plan.Skipped, 3)
	assert.Equal(t, 1, plan.Skipped[0].Line)
	assert.Equal(t, "malformed time span", plan.Skipped[0].Reason)
	assert.Equal(t, 2, plan.Skipped[1].Line)
	assert.Contains(t, plan.Skipped[1].Reason, "invalid start time")
	assert.Contains(t, plan.Skipped[2].Reason, "invalid end time")
}

func TestParse_EntryWithoutNameIsReported(t *testing.T) {
	text := strings.Join([]string{
		"- [ ] 9:00 - 10:30",
		"- [x] 11:00 - 11:30   ",
		"- [ ] 13:00 - 14:00 [[]]",
		"- [ ] 14:00 - 15:00 Named",
	}, "\n")

	plan := Parse(testDay, text)
	require.Len(t, plan.Blocks, 1)
	assert.Equal(t, "Named", plan.Blocks[0].Name)

	require.Len(t, plan.Skipped, 3)
	for i, s := range plan.Skipped {
		assert.Equal(t, i+1, s.Line)
		assert.Equal(t, "missing task name", s.Reason)
	}
}

func TestParse_NegativeLengthIsKeptAndFlagged(t *testing.T) {
	plan := Parse(testDay, "- [ ] 11:00 - 10:00 Backwards")

	require.Len(t, plan.Blocks, 1)
	assert.Equal(t, "-1:00", plan.Blocks[0].Length().Render(true))
	require.Len(t, plan.Warnings, 1)
	assert.Equal(t, 1, plan.Warnings[0].Line)
}

func TestParse_PartialLinkMarkersKeptVerbatim(t *testing.T) {
	cases := map[string]string{
		"- [ ] 9:00 - 10:00 [[Open only":    "[[Open only",
		"- [ ] 9:00 - 10:00 Close only]]":   "Close only]]",
		"- [ ] 9:00 - 10:00 See [[Note]]":   "See [[Note]]",
		"- [ ] 9:00 - 10:00 [[]]":           "",
		"- [ ] 9:00 - 10:00 [[Nested]] end": "[[Nested]] end",
	}
	for line, expected := range cases {
		plan := Parse(testDay, line)
		require.Len(t, plan.Blocks, 1, line)
		assert.Equal(t, expected, plan.Blocks[0].Name, line)
	}
}

func TestParse_CRLF(t *testing.T) {
	plan := Parse(testDay, "- [ ] 9:00 - 10:00 [[A]]\r\n- [x] 10:00 - 10:15 [[B]]\r\n")
	require.Len(t, plan.Blocks, 2)
	assert.Equal(t, "A", plan.Blocks[0].Name)
	assert.True(t, plan.Blocks[0].Linked)
	assert.Equal(t, "B", plan.Blocks[1].Name)
}

func TestParseReader_MatchesParse(t *testing.T) {
	text := "- [ ] 9:00 - 10:30 [[Write report]]\nprose\n- [x] 11:00 - 12:00 Review\n"

	fromReader, err := ParseReader(testDay, strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, Parse(testDay, text), fromReader)
}

func TestParse_Empty(t *testing.T) {
	plan := Parse(testDay, "")
	assert.Empty(t, plan.Blocks)
	assert.Empty(t, plan.Skipped)
}
