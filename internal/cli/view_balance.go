package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/reconcile"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// reportLoadedMsg carries the result of a reconciliation. seq identifies the
// load that produced it.
type reportLoadedMsg struct {
	seq    int
	report *reconcile.Report
	err    error
}

// fileChangedMsg signals that a note under the vault changed.
type fileChangedMsg struct{}

type watchKeyMap struct {
	Reload key.Binding
	Prev   key.Binding
	Next   key.Binding
	Quit   key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Reload, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev week")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next week")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// watchModel shows the balance of one sprint and reloads it whenever a note
// changes.
type watchModel struct {
	ctx     context.Context
	balance BalanceService
	changes <-chan struct{}

	sprint  domain.Sprint
	report  *reconcile.Report
	err     error
	loading bool
	loadSeq int
	live    bool

	keys    watchKeyMap
	help    help.Model
	spinner spinner.Model
	width   int
}

func newWatchModel(ctx context.Context, balance BalanceService, sprint domain.Sprint, changes <-chan struct{}) *watchModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = formatter.StylePurple
	return &watchModel{
		ctx:     ctx,
		balance: balance,
		changes: changes,
		sprint:  sprint,
		loading: true,
		live:    changes != nil,
		keys:    newWatchKeyMap(),
		help:    help.New(),
		spinner: sp,
		width:   80,
	}
}

func (m *watchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadReport(), m.spinner.Tick}
	if m.changes != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

func (m *watchModel) loadReport() tea.Cmd {
	m.loadSeq++
	ctx, balance, sprint, seq := m.ctx, m.balance, m.sprint, m.loadSeq
	return func() tea.Msg {
		report, err := balance.Reconcile(ctx, sprint.Tag, sprint.Range)
		return reportLoadedMsg{seq: seq, report: report, err: err}
	}
}

// waitForChange blocks until the watcher signals. A closed channel ends live
// reloading.
func (m *watchModel) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		// Only the latest load counts, whether it was superseded by a reload
		// or by moving to another week.
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		m.report, m.err = msg.report, msg.err
		return m, nil

	case fileChangedMsg:
		return m, tea.Batch(m.reload(), m.waitForChange())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			return m, m.reload()
		case key.Matches(msg, m.keys.Prev):
			return m, m.shiftWeek(-7)
		case key.Matches(msg, m.keys.Next):
			return m, m.shiftWeek(7)
		}
	}
	return m, nil
}

func (m *watchModel) reload() tea.Cmd {
	if m.loading {
		return m.loadReport()
	}
	m.loading = true
	return tea.Batch(m.loadReport(), m.spinner.Tick)
}

func (m *watchModel) shiftWeek(days int) tea.Cmd {
	m.sprint = domain.CurrentSprint(m.sprint.Range.Start.AddDays(days))
	m.report, m.err = nil, nil
	return m.reload()
}

func (m *watchModel) View() string {
	var b strings.Builder

	title := formatter.Header("Sprint " + m.sprint.Tag.String())
	title += "  " + formatter.Dim(m.sprint.Range.String())
	if m.loading {
		title += "  " + m.spinner.View()
	} else if m.live {
		title += "  " + formatter.StyleGreen.Render("● live")
	}
	b.WriteString(title + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.report != nil:
		b.WriteString(formatter.BalanceBody(m.report, m.barWidth()))
	default:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *watchModel) barWidth() int {
	w := m.width / 5
	if w < 10 {
		return 10
	}
	if w > 30 {
		return 30
	}
	return w
}
