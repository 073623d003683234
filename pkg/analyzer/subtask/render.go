package subtask

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const barWidth = 20

// RenderText implements output.Renderable for text output.
func (a *Analysis) RenderText(w io.Writer, colored bool) error {
	if len(a.Groups) == 0 {
		fmt.Fprintln(w, "No subtasks found")
		return nil
	}

	title := fmt.Sprintf("Subtask Progress (%d parents)", a.Summary.Parents)
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	for _, g := range a.Groups {
		label := g.ParentID
		if g.ParentTitle != "" {
			label = fmt.Sprintf("%s %s", g.ParentID, g.ParentTitle)
		}
		bar := progressBar(g.Progress)
		if colored {
			bar = progressColor(g.Progress).Sprint(bar)
		}
		fmt.Fprintf(w, "%-40s %s %3d%% (%d/%d)\n", label, bar, g.Progress, g.Done, g.Total)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtasks: %d, completed: %d, parents fully complete: %d\n",
		a.Summary.Subtasks, a.Summary.Completed, a.Summary.FullyComplete)
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (a *Analysis) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Subtask Progress (%d parents)\n\n", a.Summary.Parents)
	if len(a.Groups) == 0 {
		fmt.Fprintln(w, "No subtasks found")
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintln(w, "| Parent | Title | Done | Total | Progress |")
	fmt.Fprintln(w, "|--------|-------|------|-------|----------|")
	for _, g := range a.Groups {
		fmt.Fprintf(w, "| %s | %s | %d | %d | %d%% |\n", g.ParentID, g.ParentTitle, g.Done, g.Total, g.Progress)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (a *Analysis) RenderData() any {
	return a
}

// RenderText implements output.Renderable for text output.
func (l *IssueList) RenderText(w io.Writer, colored bool) error {
	for _, p := range l.Issues {
		bar := progressBar(p.Progress)
		if colored {
			bar = progressColor(p.Progress).Sprint(bar)
		}
		parent := p.ParentID
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(w, "%-12s parent %-12s %s %3d%%\n", p.IssueID, parent, bar, p.Progress)
	}
	for _, id := range l.Missing {
		fmt.Fprintf(w, "%-12s not found\n", id)
	}
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (l *IssueList) RenderMarkdown(w io.Writer) error {
	fmt.Fprintln(w, "| Issue | Parent | Progress |")
	fmt.Fprintln(w, "|-------|--------|----------|")
	for _, p := range l.Issues {
		fmt.Fprintf(w, "| %s | %s | %d%% |\n", p.IssueID, p.ParentID, p.Progress)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (l *IssueList) RenderData() any {
	return l
}

func progressBar(pct int) string {
	filled := pct * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func progressColor(pct int) *color.Color {
	switch {
	case pct >= 100:
		return color.New(color.FgGreen)
	case pct >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
