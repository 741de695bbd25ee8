package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/cobra"
)

// errNameRequired is returned by "note new" when no name is given and no
// terminal is available for the form.
var errNameRequired = errors.New("a task name is required when not running in a terminal")

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage task notes",
	}
	cmd.AddCommand(newNoteNewCmd(app))
	return cmd
}

func newNoteNewCmd(app *App) *cobra.Command {
	var (
		sprints   []string
		current   bool
		estimate  string
		priority  int
		status    string
		issueType string
		due       string
		jiraKey   string
	)

	cmd := &cobra.Command{
		Use:   "new [NAME]",
		Short: "Create a task note",
		Long: `Create a task note in the project directory. Planner entries refer
to the task by NAME. Without NAME an interactive form is shown.`,
		Example: `  tally note new "Fix login" --current --estimate 3:00 --priority 2
  tally note new`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Validate(); err != nil {
				return err
			}

			in := noteInput{
				status:    status,
				issueType: issueType,
				priority:  priority,
				estimate:  estimate,
				due:       due,
				jiraKey:   jiraKey,
			}
			tags := append([]string(nil), sprints...)
			if current || len(args) == 0 {
				sprint, err := weekFlags{}.sprint(app)
				if err != nil {
					return err
				}
				if current || len(tags) == 0 {
					tags = append(tags, string(sprint.Tag))
				}
			}
			in.sprints = joinTags(tags)

			if len(args) == 1 {
				in.name = args[0]
			} else {
				if !app.interactive() {
					return errNameRequired
				}
				if in.status == "" {
					in.status = string(domain.StatusToDo)
				}
				if in.issueType == "" {
					in.issueType = string(domain.IssueTask)
				}
				if in.priority == 0 {
					in.priority = domain.PriorityMedium.Number()
				}
				if err := noteForm(&in).Run(); err != nil {
					return fmt.Errorf("note form: %w", err)
				}
			}
			if in.status == "" {
				in.status = string(domain.StatusToDo)
			}

			meta, err := in.metadata()
			if err != nil {
				return err
			}
			path, err := app.Tasks.WriteNote(meta, nil)
			if err != nil {
				return err
			}
			app.logger().Debug("note_created", "path", path, "name", meta.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sprints, "sprint", nil, "Sprint tags, repeatable or comma separated")
	cmd.Flags().BoolVar(&current, "current", false, "Tag the note with the active sprint")
	cmd.Flags().StringVar(&estimate, "estimate", "", "Original estimate, H:MM; also sets time left")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1 (very high) to 5 (very low)")
	cmd.Flags().StringVar(&status, "status", "", `Status: "To Do", "In Progress", "Blocked" or "Done" (default "To Do")`)
	cmd.Flags().StringVar(&issueType, "type", "", "Issue type: Story, Task, Sub-task or Epic")
	cmd.Flags().StringVar(&due, "due", "", "Due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&jiraKey, "jira", "", "Jira issue key")

	return cmd
}

func joinTags(tags []string) string {
	seen := make(map[string]bool, len(tags))
	var out string
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		if out != "" {
			out += ","
		}
		out += t
	}
	return out
}
