package assign

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RenderText implements output.Renderable for text output.
func (a *Analysis) RenderText(w io.Writer, colored bool) error {
	title := fmt.Sprintf("Suggested Assignments (%d open tasks)", a.Tasks)
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	if len(a.Groups) == 0 && len(a.Unstaffed) == 0 {
		fmt.Fprintln(w, "No tasks match a skill")
	}
	for _, g := range a.Groups {
		header := fmt.Sprintf("%s (%s)", g.Skill, strings.Join(g.Members, ", "))
		if colored {
			header = color.CyanString(header)
		}
		fmt.Fprintln(w, header)
		for _, s := range g.Suggestions {
			fmt.Fprintf(w, "  %-10s %-3s %-40s -> %s\n", s.IssueID, s.Priority, truncate(s.Title, 40), s.UserID)
		}
		fmt.Fprintln(w)
	}

	if len(a.Unstaffed) > 0 {
		msg := fmt.Sprintf("No suitable member for: %s", joinSkills(a.Unstaffed))
		if colored {
			msg = color.YellowString(msg)
		}
		fmt.Fprintln(w, msg)
	}
	if len(a.Unmatched) > 0 {
		fmt.Fprintf(w, "Unmatched tasks: %s\n", strings.Join(a.Unmatched, ", "))
	}
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (a *Analysis) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Suggested Assignments (%d open tasks)\n\n", a.Tasks)
	if len(a.Groups) > 0 {
		fmt.Fprintln(w, "| Skill | Issue | Priority | Title | Suggested |")
		fmt.Fprintln(w, "|-------|-------|----------|-------|-----------|")
		for _, g := range a.Groups {
			for _, s := range g.Suggestions {
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n", g.Skill, s.IssueID, s.Priority, s.Title, s.UserID)
			}
		}
		fmt.Fprintln(w)
	}
	if len(a.Unstaffed) > 0 {
		fmt.Fprintf(w, "**No suitable member:** %s\n\n", joinSkills(a.Unstaffed))
	}
	if len(a.Unmatched) > 0 {
		fmt.Fprintf(w, "**Unmatched:** %s\n\n", strings.Join(a.Unmatched, ", "))
	}
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (a *Analysis) RenderData() any {
	return a
}

func joinSkills(skills []Skill) string {
	parts := make([]string, len(skills))
	for i, s := range skills {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
