// Package health summarizes the state of a single sprint.
package health

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/panbanda/sprintlens/pkg/analyzer/burndown"
	"github.com/panbanda/sprintlens/pkg/models"
)

// Analysis is a point-in-time health report for one sprint.
type Analysis struct {
	SprintID        string             `json:"sprint_id" toon:"sprint_id"`
	SprintName      string             `json:"sprint_name" toon:"sprint_name"`
	TotalIssues     int                `json:"total_issues" toon:"total_issues"`
	TotalPoints     int                `json:"total_points" toon:"total_points"`
	CompletedPoints int                `json:"completed_points" toon:"completed_points"`
	Progress        float64            `json:"progress" toon:"progress"` // 0-100
	TasksInReview   int                `json:"tasks_in_review" toon:"tasks_in_review"`
	EndDate         time.Time          `json:"end_date" toon:"end_date"`
	DaysLeft        int                `json:"days_left" toon:"days_left"` // negative once the sprint has ended
	Burndown        *burndown.Analysis `json:"burndown" toon:"burndown"`
}

// Analyze reports on the issues of all that belong to sprint. CompletedPoints
// counts issues whose current status is Done regardless of when they were
// completed. now is the reference instant for DaysLeft.
func Analyze(sprint models.Sprint, all []models.Issue, now time.Time, opts ...burndown.Option) *Analysis {
	var issues []models.Issue
	for _, issue := range all {
		if issue.SprintID == sprint.ID {
			issues = append(issues, issue)
		}
	}

	a := &Analysis{
		SprintID:    sprint.ID,
		SprintName:  sprint.Name,
		TotalIssues: len(issues),
		EndDate:     sprint.EndDate,
		DaysLeft:    DaysLeft(sprint.EndDate, now),
		Burndown:    burndown.Analyze(sprint, issues, opts...),
	}
	for _, issue := range issues {
		a.TotalPoints += issue.Points()
		switch issue.Status {
		case models.StatusDone:
			a.CompletedPoints += issue.Points()
		case models.StatusInReview:
			a.TasksInReview++
		}
	}
	if a.TotalPoints > 0 {
		a.Progress = float64(a.CompletedPoints) / float64(a.TotalPoints) * 100
	}
	return a
}

// DaysLeft counts whole or partial days from now until end.
func DaysLeft(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// Refresh recomputes DaysLeft for a new reference instant.
func (a *Analysis) Refresh(now time.Time) {
	a.DaysLeft = DaysLeft(a.EndDate, now)
}

// RenderText implements output.Renderable for text output.
func (a *Analysis) RenderText(w io.Writer, colored bool) error {
	title := fmt.Sprintf("Sprint Health: %s", a.SprintName)
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	progress := fmt.Sprintf("%.0f%%", math.Round(a.Progress))
	days := fmt.Sprintf("%d", a.DaysLeft)
	if colored {
		if a.DaysLeft < 0 {
			days = color.RedString(days)
		}
		if a.Progress >= 100 {
			progress = color.GreenString(progress)
		}
	}
	fmt.Fprintf(w, "Progress:       %s (%d / %d SP)\n", progress, a.CompletedPoints, a.TotalPoints)
	fmt.Fprintf(w, "Days remaining: %s\n", days)
	fmt.Fprintf(w, "In review:      %d\n", a.TasksInReview)
	fmt.Fprintf(w, "Issues:         %d\n", a.TotalIssues)
	fmt.Fprintln(w)

	if a.Burndown != nil {
		return a.Burndown.RenderText(w, colored)
	}
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (a *Analysis) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Sprint Health: %s\n\n", a.SprintName)
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|--------|-------|")
	fmt.Fprintf(w, "| Progress | %.0f%% (%d / %d SP) |\n", math.Round(a.Progress), a.CompletedPoints, a.TotalPoints)
	fmt.Fprintf(w, "| Days remaining | %d |\n", a.DaysLeft)
	fmt.Fprintf(w, "| In review | %d |\n", a.TasksInReview)
	fmt.Fprintf(w, "| Issues | %d |\n", a.TotalIssues)
	fmt.Fprintln(w)

	if a.Burndown != nil {
		return a.Burndown.RenderMarkdown(w)
	}
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (a *Analysis) RenderData() any {
	return a
}
