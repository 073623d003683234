package burndown

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const chartWidth = 30

// RenderText implements output.Renderable for text output.
func (a *Analysis) RenderText(w io.Writer, colored bool) error {
	title := fmt.Sprintf("Sprint %q Burndown", a.SprintName)
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	if len(a.Points) == 0 {
		fmt.Fprintln(w, "No issues in this sprint")
		return nil
	}

	fmt.Fprintf(w, "Time Range: %s to %s (%d days)\n",
		a.Start.Format("2006-01-02"), a.End.Format("2006-01-02"), a.DurationDays)
	fmt.Fprintf(w, "Story Points: %d total, %d burned (%s attribution)\n",
		a.TotalPoints, a.BurnedPoints, a.Attribution)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-8s %9s %7s\n", "Day", "Remaining", "Ideal")
	for _, p := range a.Points {
		bar := scaledBar(p.Remaining, a.TotalPoints)
		if colored {
			if float64(p.Remaining) > p.Ideal {
				bar = color.RedString(bar)
			} else {
				bar = color.GreenString(bar)
			}
		}
		fmt.Fprintf(w, "%-8s %9d %7.1f %s\n", p.Day, p.Remaining, p.Ideal, bar)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (a *Analysis) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Sprint %q Burndown\n\n", a.SprintName)
	if len(a.Points) == 0 {
		fmt.Fprintln(w, "No issues in this sprint")
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintf(w, "**Time Range:** %s to %s (%d days)\n\n",
		a.Start.Format("2006-01-02"), a.End.Format("2006-01-02"), a.DurationDays)

	fmt.Fprintln(w, "| Day | Remaining | Ideal |")
	fmt.Fprintln(w, "|-----|-----------|-------|")
	for _, p := range a.Points {
		fmt.Fprintf(w, "| %s | %d | %.1f |\n", p.Day, p.Remaining, p.Ideal)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (a *Analysis) RenderData() any {
	return a
}

func scaledBar(value, max int) string {
	if max <= 0 {
		return ""
	}
	n := value * chartWidth / max
	return strings.Repeat("#", n)
}
