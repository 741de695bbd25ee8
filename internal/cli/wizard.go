package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tallyHuhTheme styles huh forms with the formatter palette: orange accents
// on the focused field, everything else dimmed.
func tallyHuhTheme() *huh.Theme {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	accent, dim, text := fg(formatter.ColorHeader), fg(formatter.ColorDim), fg(formatter.ColorFg)

	t := huh.ThemeBase()

	f := &t.Focused
	f.Title = accent.Bold(true)
	f.Description = dim
	f.SelectSelector = accent
	f.SelectedOption = fg(formatter.ColorGreen)
	f.UnselectedOption = text
	f.FocusedButton = text.Background(formatter.ColorHeader).Padding(0, 1)
	f.BlurredButton = dim.Padding(0, 1)
	f.TextInput.Cursor = accent
	f.TextInput.Prompt = accent
	f.TextInput.Text = text
	f.TextInput.Placeholder = dim

	b := &t.Blurred
	b.Title = dim
	b.SelectSelector = dim
	b.SelectedOption = dim
	b.UnselectedOption = dim
	b.TextInput.Prompt = dim
	b.TextInput.Text = dim

	return t
}

// noteInput collects the fields of a new task note as typed.
type noteInput struct {
	name      string
	status    string
	issueType string
	priority  int
	sprints   string
	estimate  string
	due       string
	jiraKey   string
}

// metadata converts the typed fields, validating each.
func (in noteInput) metadata() (domain.TaskMetadata, error) {
	if err := validateNoteName(in.name); err != nil {
		return domain.TaskMetadata{}, err
	}
	meta := domain.TaskMetadata{
		Name:      strings.TrimSpace(in.name),
		Status:    domain.TaskStatus(in.status),
		IssueType: domain.IssueType(in.issueType),
		JiraKey:   strings.TrimSpace(in.jiraKey),
	}
	if meta.Status != "" && !domain.ValidTaskStatuses[meta.Status] {
		return domain.TaskMetadata{}, fmt.Errorf("unknown status %q", in.status)
	}
	if meta.IssueType != "" && !domain.ValidIssueTypes[meta.IssueType] {
		return domain.TaskMetadata{}, fmt.Errorf("unknown issue type %q", in.issueType)
	}
	if in.priority != 0 {
		p, err := domain.PriorityFromNumber(in.priority)
		if err != nil {
			return domain.TaskMetadata{}, err
		}
		meta.Priority = p
	}
	for _, s := range strings.Split(in.sprints, ",") {
		if s = strings.TrimSpace(s); s != "" {
			meta.Sprints = append(meta.Sprints, domain.SprintTag(s))
		}
	}
	if strings.TrimSpace(in.estimate) != "" {
		est, err := domain.ParseDuration(in.estimate)
		if err != nil {
			return domain.TaskMetadata{}, err
		}
		spent := domain.Zero
		meta.Time = domain.TimeTracking{Original: &est, Spent: &spent, Remaining: &est}
	}
	if strings.TrimSpace(in.due) != "" {
		due, err := domain.ParseDate(strings.TrimSpace(in.due))
		if err != nil {
			return domain.TaskMetadata{}, err
		}
		meta.DueDate = &due
	}
	return meta, nil
}

// noteForm builds the interactive form behind "note new".
func noteForm(in *noteInput) *huh.Form {
	statusOptions := []huh.Option[string]{
		huh.NewOption("To Do", string(domain.StatusToDo)),
		huh.NewOption("In Progress", string(domain.StatusInProgress)),
		huh.NewOption("Blocked", string(domain.StatusBlocked)),
		huh.NewOption("Done", string(domain.StatusDone)),
	}
	typeOptions := []huh.Option[string]{
		huh.NewOption("Task", string(domain.IssueTask)),
		huh.NewOption("Story", string(domain.IssueStory)),
		huh.NewOption("Sub-task", string(domain.IssueSubTask)),
		huh.NewOption("Epic", string(domain.IssueEpic)),
	}
	priorityOptions := []huh.Option[int]{
		huh.NewOption("1 · very high", 1),
		huh.NewOption("2 · high", 2),
		huh.NewOption("3 · medium", 3),
		huh.NewOption("4 · low", 4),
		huh.NewOption("5 · very low", 5),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task Name").
				Description("Planner entries refer to the task by this name").
				Value(&in.name).
				Validate(validateNoteName),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(&in.status),
			huh.NewSelect[string]().Title("Issue Type").Options(typeOptions...).Value(&in.issueType),
			huh.NewSelect[int]().Title("Priority").Options(priorityOptions...).Value(&in.priority),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Sprints").
				Description("Comma separated tags").
				Value(&in.sprints),
			durationInput("Estimate (H:MM, blank for none)", "", &in.estimate),
			dateInput("Due Date (YYYY-MM-DD, blank for none)", "", &in.due),
			huh.NewInput().Title("Jira Key").Placeholder("OPS-123").Value(&in.jiraKey),
		),
	).WithTheme(tallyHuhTheme()).WithShowHelp(false)
}

func validateNoteName(s string) error {
	name := strings.TrimSpace(s)
	switch {
	case name == "":
		return fmt.Errorf("name is required")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("name cannot contain path separators")
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("name cannot start with a dot")
	}
	return nil
}

// validateOptionalDuration accepts empty or H:MM.
func validateOptionalDuration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseDuration(s); err != nil {
		return fmt.Errorf("use H:MM format")
	}
	return nil
}

// validateOptionalDate accepts empty or YYYY-MM-DD.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
