package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/reconcile"
	"github.com/alexanderramin/tally/internal/schedule"
	"github.com/alexanderramin/tally/internal/vault"
	"github.com/spf13/cobra"
)

// BalanceService reconciles one sprint.
type BalanceService interface {
	Reconcile(ctx context.Context, tag domain.SprintTag, rng domain.DateRange) (*reconcile.Report, error)
}

// TaskStore reads and creates task notes.
type TaskStore interface {
	LoadTasks(ctx context.Context) (vault.TaskLoad, error)
	WriteNote(meta domain.TaskMetadata, body []byte) (string, error)
}

// Watcher signals note changes while Run is active.
type Watcher interface {
	Changes() <-chan struct{}
	Run(ctx context.Context) error
	Close() error
}

// App holds the configuration and collaborators used by CLI commands.
type App struct {
	Config  config.Config
	Balance BalanceService
	Days    schedule.DaySource
	Tasks   TaskStore

	// Watch starts a watcher over the note directories. Nil disables live
	// reloading.
	Watch func() (Watcher, error)

	Logger   *slog.Logger
	LogLevel *slog.LevelVar

	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) today() domain.Date {
	if a.Now != nil {
		return domain.DateOf(a.Now())
	}
	return domain.DateOf(time.Now())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// live balance screen on a terminal and prints the balance otherwise.
func NewRootCmd(app *App) *cobra.Command {
	var weeks weekFlags
	var verbose bool

	root := &cobra.Command{
		Use:           "tally",
		Short:         "Reconcile planned time against sprint estimates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.LogLevel != nil {
				app.LogLevel.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Validate(); err != nil {
				return err
			}
			sprint, err := weeks.sprint(app)
			if err != nil {
				return err
			}
			if app.interactive() {
				return runWatch(cmd.Context(), app, sprint)
			}
			return printBalance(cmd, app, sprint)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each reconciliation to stderr")
	weeks.register(root.Flags())

	root.AddCommand(
		newBalanceCmd(app),
		newDayCmd(app),
		newTotalsCmd(app),
		newTasksCmd(app),
		newWatchCmd(app),
		newNoteCmd(app),
		newConfigCmd(app),
	)

	return root
}
