package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/reconcile"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/alexanderramin/tally/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is Wednesday of ISO week 7, 2024 (sprint Y24W07).
var fixedNow = time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)

// testApp wires a full App over a temporary vault for CLI integration tests.
func testApp(t *testing.T) (*App, *testutil.TestVault) {
	t.Helper()
	tv := testutil.NewTestVault(t)
	v := vault.New(tv.Config)
	now := func() time.Time { return fixedNow }

	return &App{
		Config:  tv.Config,
		Balance: reconcile.New(v.Days, v.Tasks, reconcile.WithClock(now)),
		Days:    v.Days,
		Tasks:   v.Tasks,
		Now:     now,
	}, tv
}

// seedSprint writes two sprint tasks and a few days of planner entries.
func seedSprint(t *testing.T, tv *testutil.TestVault) {
	t.Helper()
	tv.WriteTask(t, "Write report", "sprints: [Y24W07]", "time left: 2:00", "status: In Progress", "priority: 2")
	tv.WriteTask(t, "team/Review PRs", "sprints:", "  - Y24W07", `time left: "1:00"`)
	tv.WriteTask(t, "Old epic", "sprints: [Y24W05]", "time left: 8:00", "issue_type: Epic")

	tv.WriteDay(t, "2024-02-12",
		"- [x] 9:00 - 10:30 [[Write report]]",
		"- [ ] 14:00 - 14:45 Ad-hoc Fix",
	)
	tv.WriteDay(t, "2024-02-14",
		"- [ ] 9:00 - 10:00 [[Write report]]",
		"- [ ] 11:00 - 11:30 [[Review PRs]]",
		"- [ ] 9h - 10h Standup",
	)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// --- Root and balance ---

func TestRootCmd_PrintsBalanceWhenNotInteractive(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "SPRINT Y24W07")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Review PRs")
}

func TestRootCmd_MissingVault(t *testing.T) {
	app, _ := testApp(t)
	app.Config.VaultPath = ""

	_, err := executeCmd(t, app)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingVault)
}

func TestBalanceCmd_WithData(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app, "balance")
	require.NoError(t, err)

	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "2:30", "1:30 done plus 1:00 open")
	assert.Contains(t, out, "OUTSIDE THE SPRINT")
	assert.Contains(t, out, "Ad-hoc Fix (no note)")
	assert.NotContains(t, out, "Old epic")
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "9h - 10h Standup")
}

func TestBalanceCmd_OtherWeek(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app, "balance", "--week", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "SPRINT Y24W05")
	assert.Contains(t, out, "Old epic")
	assert.NotContains(t, out, "OUTSIDE THE SPRINT")
}

func TestBalanceCmd_CustomTag(t *testing.T) {
	app, tv := testApp(t)
	tv.WriteTask(t, "Tagged", "sprints: [platform-7]", "time left: 1:00")

	out, err := executeCmd(t, app, "balance", "--tag", "platform-7")
	require.NoError(t, err)
	assert.Contains(t, out, "SPRINT PLATFORM-7")
	assert.Contains(t, out, "Tagged")
}

func TestBalanceCmd_EmptySprint(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "No task notes are tagged Y24W07.")
}

func TestBalanceCmd_InvalidWeek(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "balance", "--year", "2023", "--week", "53")
	assert.Error(t, err)
}

// --- Day ---

func TestDayCmd_DefaultsToToday(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app, "day")
	require.NoError(t, err)
	assert.Contains(t, out, "WED 2024-02-14")
	assert.Contains(t, out, "Review PRs")
	assert.Contains(t, out, "SKIPPED line")
}

func TestDayCmd_ExplicitDate(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app, "day", "2024-02-12")
	require.NoError(t, err)
	assert.Contains(t, out, "Ad-hoc Fix")
	assert.Contains(t, out, "Completed 1:30")
}

func TestDayCmd_NoNote(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "day", "2024-02-13")
	require.NoError(t, err)
	assert.Contains(t, out, "No planner note for Tue 2024-02-13.")
}

func TestDayCmd_InvalidDate(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "day", "14/02/2024")
	assert.Error(t, err)
}

// --- Totals ---

func TestTotalsCmd_SprintWeek(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app, "totals")
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 7 days have a planner note")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Total allocated 3:45")
}

func TestTotalsCmd_ExplicitRange(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app, "totals", "--from", "2024-02-13", "--to", "2024-02-14")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 days have a planner note")
	assert.NotContains(t, out, "Ad-hoc Fix")
}

func TestTotalsCmd_ReversedRange(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "totals", "--from", "2024-02-14", "--to", "2024-02-13")
	assert.Error(t, err)
}

// --- Tasks ---

func TestTasksCmd_ListsAll(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app, "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Review PRs")
	assert.Contains(t, out, "Old epic")
}

func TestTasksCmd_CurrentSprint(t *testing.T) {
	app, tv := testApp(t)
	seedSprint(t, tv)

	out, err := executeCmd(t, app, "tasks", "--current")
	require.NoError(t, err)
	assert.Contains(t, out, "SPRINT Y24W07")
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Old epic")
}

func TestTasksCmd_ReportsBrokenNotes(t *testing.T) {
	app, tv := testApp(t)
	tv.WriteTask(t, "Broken", "priority: urgent")

	out, err := executeCmd(t, app, "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "Broken.md")
}

func TestTasksCmd_Empty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "No task notes found.")
}

// --- Note ---

func TestNoteNewCmd_WritesNote(t *testing.T) {
	app, tv := testApp(t)

	out, err := executeCmd(t, app, "note", "new", "Fix login",
		"--current", "--estimate", "3:00", "--priority", "2", "--due", "2024-02-20")
	require.NoError(t, err)

	path := filepath.Join(tv.Config.ProjectDir(), "Fix login.md")
	assert.Contains(t, out, "Created "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	meta, _, err := vault.ParseTaskNote(path, data)
	require.NoError(t, err)
	assert.Equal(t, "Fix login", meta.Name)
	assert.True(t, meta.InSprint("Y24W07"))
	require.NotNil(t, meta.Time.Remaining)
	assert.Equal(t, "3:00", meta.Time.Remaining.String())
	require.NotNil(t, meta.Time.Spent)
	assert.True(t, meta.Time.Spent.IsZero())
	assert.Equal(t, 2, meta.Priority.Number())
	assert.Equal(t, "To Do", string(meta.Status))

	out, err = executeCmd(t, app, "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "Fix login")
}

func TestNoteNewCmd_RefusesOverwrite(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "note", "new", "Twice")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "note", "new", "Twice")
	assert.ErrorIs(t, err, vault.ErrNoteExists)
}

func TestNoteNewCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad estimate", []string{"X", "--estimate", "three hours"}},
		{"bad priority", []string{"X", "--priority", "9"}},
		{"bad status", []string{"X", "--status", "Waiting"}},
		{"bad due date", []string{"X", "--due", "tomorrow"}},
		{"path in name", []string{"a/b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := testApp(t)
			_, err := executeCmd(t, app, append([]string{"note", "new"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestNoteNewCmd_NameRequiredWithoutTerminal(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "note", "new")
	assert.ErrorIs(t, err, errNameRequired)
}

// --- Config ---

func TestConfigInitCmd(t *testing.T) {
	app, _ := testApp(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := executeCmd(t, app, "config", "init", "--path", path, "--vault", "/notes")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/notes", cfg.VaultPath)
	assert.Equal(t, "daily", cfg.DailyNotesPath)

	_, err = executeCmd(t, app, "config", "init", "--path", path)
	assert.Error(t, err, "existing file is kept")

	_, err = executeCmd(t, app, "config", "init", "--path", path, "--force")
	require.NoError(t, err)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, app.Config.VaultPath, cfg.VaultPath)
}

func TestConfigShowCmd(t *testing.T) {
	app, tv := testApp(t)

	out, err := executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "vault_path: "+tv.Root)
	assert.Contains(t, out, "project_path: projects")
}
