package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/schedule"
	"github.com/spf13/cobra"
)

func newTotalsCmd(app *App) *cobra.Command {
	var ranges rangeFlags

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Sum planned time per task over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Validate(); err != nil {
				return err
			}
			rng, err := ranges.dateRange(app)
			if err != nil {
				return err
			}
			sched, err := schedule.Aggregate(cmd.Context(), app.Days, rng, schedule.WithWorkers(app.Config.Workers))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTotals(sched))
			return nil
		},
	}

	ranges.register(cmd.Flags())

	return cmd
}
