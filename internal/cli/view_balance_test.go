package cli

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/reconcile"
	"github.com/alexanderramin/tally/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBalance returns a canned report per call and records the sprints asked for.
type fakeBalance struct {
	mu    sync.Mutex
	calls []domain.SprintTag
	err   error
}

func (f *fakeBalance) Reconcile(_ context.Context, tag domain.SprintTag, rng domain.DateRange) (*reconcile.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tag)
	if f.err != nil {
		return nil, f.err
	}
	left := domain.MustParseDuration("2:00")
	return &reconcile.Report{
		Sprint: tag,
		Range:  rng,
		InSprint: []reconcile.Row{{
			Name:  "Write report",
			Entry: domain.BalanceEntry{InSprint: true, HasMetadata: true, Remaining: &left, Completed: domain.Minutes(int64(30 * len(f.calls)))},
		}},
		Summary: reconcile.Summary{SprintRemaining: left},
	}, nil
}

func (f *fakeBalance) tags() []domain.SprintTag {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.SprintTag(nil), f.calls...)
}

func newWatchDriver(t *testing.T, balance BalanceService, changes <-chan struct{}) *teatest.Driver {
	t.Helper()
	sprint, err := domain.SprintFor(2024, 7)
	require.NoError(t, err)
	d := teatest.New(t, newWatchModel(context.Background(), balance, sprint, changes), teatest.WithSize(120, 40))
	d.DrainInit()
	return d
}

func TestWatchModel_LoadsReport(t *testing.T) {
	balance := &fakeBalance{}
	d := newWatchDriver(t, balance, nil)

	view := stripANSI(d.View())
	assert.Contains(t, view, "SPRINT Y24W07")
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "reload")
	assert.NotContains(t, view, "live")
	assert.Equal(t, []domain.SprintTag{"Y24W07"}, balance.tags())
}

func TestWatchModel_ReloadKey(t *testing.T) {
	balance := &fakeBalance{}
	d := newWatchDriver(t, balance, nil)

	d.PressKey('r')
	assert.Len(t, balance.tags(), 2)
	assert.Contains(t, stripANSI(d.View()), "1:00", "second load reports 1:00 done")
}

func TestWatchModel_WeekNavigation(t *testing.T) {
	balance := &fakeBalance{}
	d := newWatchDriver(t, balance, nil)

	d.Press(tea.KeyRight)
	assert.Contains(t, stripANSI(d.View()), "SPRINT Y24W08")

	d.PressKey('h')
	d.PressKey('h')
	assert.Contains(t, stripANSI(d.View()), "SPRINT Y24W06")

	assert.Equal(t, []domain.SprintTag{"Y24W07", "Y24W08", "Y24W07", "Y24W06"}, balance.tags())
}

func TestWatchModel_YearBoundary(t *testing.T) {
	balance := &fakeBalance{}
	sprint, err := domain.SprintFor(2024, 1)
	require.NoError(t, err)
	d := teatest.New(t, newWatchModel(context.Background(), balance, sprint, nil))
	d.DrainInit()

	d.Press(tea.KeyLeft)
	assert.Contains(t, stripANSI(d.View()), "SPRINT Y23W52")
}

func TestWatchModel_ReloadsOnChange(t *testing.T) {
	balance := &fakeBalance{}
	changes := make(chan struct{}, 1)
	changes <- struct{}{}

	d := newWatchDriver(t, balance, changes)

	assert.Len(t, balance.tags(), 2, "initial load plus one for the change")
	assert.Contains(t, stripANSI(d.View()), "live")
}

func TestWatchModel_ClosedChangesStopWaiting(t *testing.T) {
	balance := &fakeBalance{}
	changes := make(chan struct{})
	close(changes)

	newWatchDriver(t, balance, changes)
	assert.Len(t, balance.tags(), 1)
}

func TestWatchModel_ShowsError(t *testing.T) {
	d := newWatchDriver(t, &fakeBalance{err: errors.New("loading task notes: permission denied")}, nil)
	assert.Contains(t, stripANSI(d.View()), "Error: loading task notes: permission denied")
}

func TestWatchModel_Quit(t *testing.T) {
	d := newWatchDriver(t, &fakeBalance{}, nil)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestWatchModel_DropsStaleReports(t *testing.T) {
	d := newWatchDriver(t, &fakeBalance{}, nil)

	first := d.Model.(*watchModel).loadSeq

	d.Press(tea.KeyRight)
	d.Send(reportLoadedMsg{seq: first, err: errors.New("stale")})
	assert.NotContains(t, stripANSI(d.View()), "stale")
	assert.Contains(t, stripANSI(d.View()), "SPRINT Y24W08")
}

func TestWatchModel_OnlyLatestLoadIsShown(t *testing.T) {
	d := newWatchDriver(t, &fakeBalance{}, nil)
	m := d.Model.(*watchModel)

	// A change arrives while a reload is still running: two loads for the
	// same week are in flight and the older one answers last.
	m.loading = false
	older := m.loadReport()
	newer := m.reload()
	require.NotNil(t, older)
	require.NotNil(t, newer)
	require.True(t, m.loading)

	d.Send(reportLoadedMsg{seq: m.loadSeq, err: errors.New("newest result")})
	d.Send(reportLoadedMsg{seq: m.loadSeq - 1, err: errors.New("older result")})

	view := stripANSI(d.View())
	assert.Contains(t, view, "newest result")
	assert.NotContains(t, view, "older result")
	assert.False(t, d.Model.(*watchModel).loading)
}
