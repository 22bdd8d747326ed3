package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/goalmate/models"
	"github.com/josephgoksu/goalmate/query"
)

var (
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")) // red
	mediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("221")) // yellow
	lowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))  // green
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// renderPriority colors a priority label.
func renderPriority(p models.TaskPriority) string {
	switch p {
	case models.PriorityHigh:
		return highStyle.Render("high")
	case models.PriorityLow:
		return lowStyle.Render("low")
	default:
		return mediumStyle.Render("medium")
	}
}

// formatDueDate renders a due date relative to today (Today, Tomorrow, or
// the calendar date).
func formatDueDate(task models.Task, today time.Time) string {
	due, ok := task.Due()
	if !ok {
		return ""
	}
	y, m, d := today.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	tomorrow := startOfToday.AddDate(0, 0, 1)

	switch {
	case sameDay(due, startOfToday):
		return "Today"
	case sameDay(due, tomorrow):
		return "Tomorrow"
	default:
		return due.Format("Jan 2, 2006")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// renderTaskLine renders a single task row for list output.
func renderTaskLine(task models.Task, today time.Time) string {
	check := "[ ]"
	text := task.Text
	if task.Completed {
		check = "[x]"
		text = doneStyle.Render(text)
	}

	line := fmt.Sprintf("%s %4d  %s  (%s)", check, task.ID, text, renderPriority(task.Priority))

	if dueLabel := formatDueDate(task, today); dueLabel != "" {
		if query.IsOverdue(task, today) {
			line += "  " + overdueStyle.Render("Overdue: "+dueLabel)
		} else {
			line += "  " + faintStyle.Render("due "+dueLabel)
		}
	}
	return line
}

// renderSummary renders the stats footer shown under the task list.
func renderSummary(s query.Summary) string {
	out := fmt.Sprintf("%d remaining, %d completed", s.Remaining, s.Completed)
	if s.HighPriorityOpen > 0 {
		out += fmt.Sprintf(", %d high priority", s.HighPriorityOpen)
	}
	if s.Overdue > 0 {
		out += ", " + overdueStyle.Render(fmt.Sprintf("%d overdue", s.Overdue))
	}
	return faintStyle.Render(out)
}

// printStatus prints a transient, user-visible status line.
func printStatus(status string) {
	fmt.Println(statusStyle.Render(status))
}
