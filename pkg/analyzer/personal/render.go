package personal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RenderText implements output.Renderable for text output.
func (d *Dashboard) RenderText(w io.Writer, colored bool) error {
	title := "Dashboard: " + d.UserID
	if d.Name != "" {
		title = fmt.Sprintf("Dashboard: %s (%s)", d.Name, d.UserID)
	}
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	urgent := fmt.Sprintf("Urgent (%d)", len(d.Urgent))
	if colored && len(d.Urgent) > 0 {
		urgent = color.RedString(urgent)
	}
	fmt.Fprintln(w, urgent)
	writeRefs(w, d.Urgent)

	fmt.Fprintf(w, "In Progress (%d)\n", len(d.InProgress))
	writeRefs(w, d.InProgress)
	fmt.Fprintf(w, "In Review (%d)\n", len(d.InReview))
	writeRefs(w, d.InReview)
	fmt.Fprintf(w, "Todo (%d)\n", len(d.Todo))
	writeRefs(w, d.Todo)

	fmt.Fprintf(w, "Completed: %d (%d%%)\n", d.Completed, d.CompletionRate)
	if s := d.Sprint; s != nil {
		fmt.Fprintf(w, "Active sprint %s: %d%% done (%d/%d issues), %d blocked, %d days left\n",
			s.Name, s.Progress, s.Done, s.Issues, s.Blocked, s.DaysLeft)
	} else {
		fmt.Fprintln(w, "No active sprint")
	}
	fmt.Fprintln(w)
	return nil
}

func writeRefs(w io.Writer, refs []IssueRef) {
	if len(refs) == 0 {
		fmt.Fprintln(w, "  -")
		return
	}
	for _, r := range refs {
		fmt.Fprintf(w, "  %-10s %-3s %3d SP  %s\n", r.ID, r.Priority, r.Points, r.Title)
	}
}

// RenderMarkdown implements output.Renderable for markdown output.
func (d *Dashboard) RenderMarkdown(w io.Writer) error {
	name := d.UserID
	if d.Name != "" {
		name = d.Name
	}
	fmt.Fprintf(w, "## Dashboard: %s\n\n", name)

	sections := []struct {
		title string
		refs  []IssueRef
	}{
		{"Urgent", d.Urgent},
		{"In Progress", d.InProgress},
		{"In Review", d.InReview},
		{"Todo", d.Todo},
	}
	for _, sec := range sections {
		fmt.Fprintf(w, "### %s (%d)\n\n", sec.title, len(sec.refs))
		for _, r := range sec.refs {
			fmt.Fprintf(w, "- **%s** [%s] %s\n", r.ID, r.Priority, r.Title)
		}
		if len(sec.refs) > 0 {
			fmt.Fprintln(w)
		}
	}

	if s := d.Sprint; s != nil {
		fmt.Fprintln(w, "| Sprint | Progress | Blocked | Days left |")
		fmt.Fprintln(w, "|--------|----------|---------|-----------|")
		fmt.Fprintf(w, "| %s | %d%% | %d | %d |\n\n", s.Name, s.Progress, s.Blocked, s.DaysLeft)
	}
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (d *Dashboard) RenderData() any {
	return d
}
