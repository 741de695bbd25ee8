package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/planner"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day [DATE]",
		Short: "Show the planner entries of one day (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Validate(); err != nil {
				return err
			}
			date := app.today()
			if len(args) == 1 {
				parsed, err := domain.ParseDate(args[0])
				if err != nil {
					return err
				}
				date = parsed
			}

			text, found, err := app.Days.ReadDay(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("%s: %w", date, err)
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No planner note for "+formatter.DayLabel(date)+"."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(planner.Parse(date, text)))
			return nil
		},
	}
}
