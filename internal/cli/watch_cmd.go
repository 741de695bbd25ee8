package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/tally/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var weeks weekFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the sprint balance and refresh it as notes change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Validate(); err != nil {
				return err
			}
			sprint, err := weeks.sprint(app)
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), app, sprint)
		},
	}
	weeks.register(cmd.Flags())
	return cmd
}

// runWatch runs the balance screen until the user quits. A watcher that
// cannot start leaves the screen usable with manual reloads.
func runWatch(ctx context.Context, app *App, sprint domain.Sprint) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan struct{}
	if app.Watch != nil {
		w, err := app.Watch()
		if err != nil {
			app.logger().Warn("vault_watch_unavailable", "error", err)
		} else {
			defer w.Close()
			changes = w.Changes()
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					app.logger().Warn("vault_watch_stopped", "error", err)
				}
			}()
		}
	}

	model := newWatchModel(ctx, app.Balance, sprint, changes)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
