package velocity

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RenderText implements output.Renderable for text output.
func (a *Analysis) RenderText(w io.Writer, colored bool) error {
	title := fmt.Sprintf("Velocity (%d completed sprints)", a.CompletedSprints)
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	if len(a.Sprints) == 0 {
		fmt.Fprintln(w, "No completed or active sprints")
		return nil
	}

	fmt.Fprintf(w, "%-30s %-10s %9s %9s\n", "Sprint", "Status", "Velocity", "Committed")
	for _, s := range a.Sprints {
		fmt.Fprintf(w, "%-30s %-10s %9d %9d\n", s.Name, s.Status, s.Velocity, s.Committed)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Average velocity: %.1f\n", a.AverageVelocity)
	forecast := fmt.Sprintf("%d", a.Forecast)
	if colored {
		forecast = trendColor(a.Fit.Slope).Sprint(forecast)
	}
	fmt.Fprintf(w, "Forecast next sprint: %s (slope=%+.2f/sprint, R²=%.2f, window %d)\n",
		forecast, a.Fit.Slope, a.Fit.RSquared, a.Window)
	fmt.Fprintf(w, "Moving average (last %d): %d\n", MovingWindow, a.MovingAverage)

	if a.Active != nil {
		fmt.Fprintf(w, "Active sprint capacity: %.0f hours (%d members, %d days)\n",
			a.Active.CapacityHours, a.Active.Members, a.Active.Days)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (a *Analysis) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Velocity (%d completed sprints)\n\n", a.CompletedSprints)
	if len(a.Sprints) == 0 {
		fmt.Fprintln(w, "No completed or active sprints")
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintln(w, "| Sprint | Status | Velocity | Committed |")
	fmt.Fprintln(w, "|--------|--------|----------|-----------|")
	for _, s := range a.Sprints {
		fmt.Fprintf(w, "| %s | %s | %d | %d |\n", s.Name, s.Status, s.Velocity, s.Committed)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "**Forecast next sprint:** %d points (moving average of last %d: %d)\n\n",
		a.Forecast, MovingWindow, a.MovingAverage)
	if a.Active != nil {
		fmt.Fprintf(w, "**Active sprint capacity:** %.0f hours\n\n", a.Active.CapacityHours)
	}
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (a *Analysis) RenderData() any {
	return a
}

func trendColor(slope float64) *color.Color {
	switch {
	case slope > 0.5:
		return color.New(color.FgGreen)
	case slope < -0.5:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}
