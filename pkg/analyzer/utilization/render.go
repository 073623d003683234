package utilization

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RenderText implements output.Renderable for text output.
func (a *Analysis) RenderText(w io.Writer, colored bool) error {
	title := fmt.Sprintf("Engineer Utilization (%d engineers)", a.Summary.TotalEngineers)
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	if len(a.Engineers) == 0 {
		fmt.Fprintln(w, "No assigned issues found")
		return nil
	}

	fmt.Fprintf(w, "Average utilization: %.1f%% (median %.1f%%, stddev %.1f)\n",
		a.Summary.AverageUtilization, a.Summary.MedianUtilization, a.Summary.StdDevUtilization)
	fmt.Fprintf(w, "Active tasks: %d, completed tasks: %d\n",
		a.Summary.TotalActiveTasks, a.Summary.TotalCompletedTasks)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-24s %6s %5s %6s %5s %7s %8s\n", "Engineer", "Rate", "Done", "Active", "Todo", "Total", "Sprint")
	for _, e := range a.Engineers {
		rate := fmt.Sprintf("%5.1f%%", e.UtilizationRate)
		if colored {
			rate = bandColor(e.Band).Sprint(rate)
		}
		fmt.Fprintf(w, "%-24s %6s %5d %6d %5d %7d %8d\n",
			truncate(e.Name, 24), rate, e.CompletedTasks, e.InProgressTasks, e.TodoTasks, e.TotalTasks, e.CurrentSprintTasks)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (a *Analysis) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Engineer Utilization (%d engineers)\n\n", a.Summary.TotalEngineers)
	if len(a.Engineers) == 0 {
		fmt.Fprintln(w, "No assigned issues found")
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintf(w, "**Average utilization:** %.1f%%\n\n", a.Summary.AverageUtilization)
	fmt.Fprintln(w, "| Engineer | Rate | Done | Active | Todo | Total | Current Sprint |")
	fmt.Fprintln(w, "|----------|------|------|--------|------|-------|----------------|")
	for _, e := range a.Engineers {
		fmt.Fprintf(w, "| %s | %.1f%% | %d | %d | %d | %d | %d |\n",
			e.Name, e.UtilizationRate, e.CompletedTasks, e.InProgressTasks, e.TodoTasks, e.TotalTasks, e.CurrentSprintTasks)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (a *Analysis) RenderData() any {
	return a
}

func bandColor(b Band) *color.Color {
	switch b {
	case BandHigh:
		return color.New(color.FgGreen)
	case BandLow:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
