package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDay describes d relative to today: "Today", "Tomorrow", "In 3d",
// "2d ago", or the date itself beyond two weeks.
func RelativeDay(d, today domain.Date) string {
	days := int(d.Time().Sub(today.Time()).Hours() / 24)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return d.String()
	}
}

// DueDate renders an optional due date with urgency coloring.
func DueDate(due *domain.Date, today domain.Date) string {
	if due == nil {
		return Dim("--")
	}
	text := RelativeDay(*due, today)
	days := int(due.Time().Sub(today.Time()).Hours() / 24)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// DayLabel renders a date with its weekday, e.g. "Wed 2024-02-14".
func DayLabel(d domain.Date) string {
	return d.Weekday().String()[:3] + " " + d.String()
}

// StatusPill returns a colored status indicator for a task note.
func StatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.StatusToDo:
		return StyleBlue.Render("○ To Do")
	case domain.StatusInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.StatusBlocked:
		return StyleRed.Render("■ Blocked")
	case domain.StatusDone:
		return StyleDim.Render("✔ Done")
	case "":
		return StyleDim.Render("--")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityBadge renders a priority as P1..P5, most urgent in red.
func PriorityBadge(p domain.Priority) string {
	label := fmt.Sprintf("P%d", p.Number())
	switch p {
	case domain.PriorityVeryHigh:
		return StyleRed.Render(label)
	case domain.PriorityHigh:
		return StyleYellow.Render(label)
	case domain.PriorityMedium:
		return StyleFg.Render(label)
	case domain.PriorityLow, domain.PriorityVeryLow:
		return StyleDim.Render(label)
	default:
		return StyleDim.Render("--")
	}
}

// OptionalDuration renders a duration that may be absent.
func OptionalDuration(d *domain.Duration) string {
	if d == nil {
		return Dim("--")
	}
	return d.String()
}

// Truncate shortens s to at most n visible runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
