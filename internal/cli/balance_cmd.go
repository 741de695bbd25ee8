package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/cobra"
)

func newBalanceCmd(app *App) *cobra.Command {
	var weeks weekFlags
	var tag string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Compare planned time with the remaining estimates of a sprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Validate(); err != nil {
				return err
			}
			sprint, err := weeks.sprint(app)
			if err != nil {
				return err
			}
			if tag != "" {
				sprint.Tag = domain.SprintTag(tag)
			}
			return printBalance(cmd, app, sprint)
		},
	}

	weeks.register(cmd.Flags())
	cmd.Flags().StringVar(&tag, "tag", "", "Sprint tag to match instead of Y{yy}W{ww}")

	return cmd
}

func printBalance(cmd *cobra.Command, app *App, sprint domain.Sprint) error {
	report, err := app.Balance.Reconcile(cmd.Context(), sprint.Tag, sprint.Range)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBalance(report))
	return nil
}
