package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/taskmeta"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	var sprint string
	var current bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List task notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Validate(); err != nil {
				return err
			}
			load, err := app.Tasks.LoadTasks(cmd.Context())
			if err != nil {
				return err
			}

			tag := domain.SprintTag(sprint)
			if current {
				active, err := weekFlags{}.sprint(app)
				if err != nil {
					return err
				}
				tag = active.Tag
			}

			tasks := load.Tasks
			if tag != "" {
				tasks = taskmeta.FilterBySprint(tasks, tag)
			}
			taskmeta.CanonicalSort(tasks)

			out := cmd.OutOrStdout()
			if tag != "" {
				fmt.Fprintln(out, formatter.Header("Sprint "+string(tag)))
			}
			fmt.Fprint(out, formatter.FormatTasks(tasks, app.today()))
			for _, f := range load.Failures {
				fmt.Fprintln(out, formatter.StyleYellow.Render("  WARNING: "+f.Error()))
			}
			for _, name := range taskmeta.Duplicates(load.Tasks) {
				fmt.Fprintln(out, formatter.StyleYellow.Render(fmt.Sprintf("  WARNING: task name %q is used by more than one note", name)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sprint, "sprint", "", "Only list notes tagged with this sprint")
	cmd.Flags().BoolVar(&current, "current", false, "Only list notes of the active sprint")
	cmd.MarkFlagsMutuallyExclusive("sprint", "current")

	return cmd
}
