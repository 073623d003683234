package team

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RenderText implements output.Renderable for text output.
func (a *Analysis) RenderText(w io.Writer, colored bool) error {
	title := fmt.Sprintf("Team Performance (%d members)", len(a.Members))
	if a.SprintID != "" {
		title += ", sprint " + a.SprintID
	}
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	if len(a.Members) == 0 {
		fmt.Fprintln(w, "No team members in snapshot")
		return nil
	}

	fmt.Fprintf(w, "%-12s %-24s %6s %9s %6s\n", "User", "Name", "Tasks", "Completed", "Rate")
	for _, m := range a.Members {
		rate := fmt.Sprintf("%5d%%", m.CompletionRate)
		if colored {
			rate = rateColor(m.CompletionRate).Sprint(rate)
		}
		fmt.Fprintf(w, "%-12s %-24s %6d %9d %6s\n", m.UserID, m.Name, m.Tasks, m.Completed, rate)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Average completion rate: %d%%\n", a.AverageCompletionRate)
	fmt.Fprintf(w, "Backlog size: %d (unassigned issues: %d)\n", a.BacklogSize, a.Unassigned)
	fmt.Fprintln(w)
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (a *Analysis) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Team Performance (%d members)\n\n", len(a.Members))
	if len(a.Members) > 0 {
		fmt.Fprintln(w, "| User | Name | Tasks | Completed | Rate |")
		fmt.Fprintln(w, "|------|------|-------|-----------|------|")
		for _, m := range a.Members {
			fmt.Fprintf(w, "| %s | %s | %d | %d | %d%% |\n", m.UserID, m.Name, m.Tasks, m.Completed, m.CompletionRate)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "**Average completion rate:** %d%% · **Backlog:** %d\n\n", a.AverageCompletionRate, a.BacklogSize)
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (a *Analysis) RenderData() any {
	return a
}

func rateColor(rate int) *color.Color {
	switch {
	case rate >= 75:
		return color.New(color.FgGreen)
	case rate < 40:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}
