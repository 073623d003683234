// Package report assembles every sprint analysis into one document.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/panbanda/sprintlens/internal/output"
	"github.com/panbanda/sprintlens/pkg/analyzer"
	"github.com/panbanda/sprintlens/pkg/analyzer/health"
	"github.com/panbanda/sprintlens/pkg/analyzer/subtask"
	"github.com/panbanda/sprintlens/pkg/analyzer/utilization"
	"github.com/panbanda/sprintlens/pkg/analyzer/velocity"
	"github.com/panbanda/sprintlens/pkg/models"
)

// Metadata describes where a report came from.
type Metadata struct {
	Source      string    `json:"source" toon:"source"`
	Revision    string    `json:"revision,omitempty" toon:"revision,omitempty"`
	GeneratedAt time.Time `json:"generated_at" toon:"generated_at"`
	Issues      int       `json:"issues" toon:"issues"`
	Sprints     int       `json:"sprints" toon:"sprints"`
	Users       int       `json:"users" toon:"users"`
}

// Report is the full analysis of one snapshot.
type Report struct {
	Metadata       Metadata              `json:"metadata" toon:"metadata"`
	ActiveSprintID string                `json:"active_sprint_id,omitempty" toon:"active_sprint_id,omitempty"`
	Sprints        []*health.Analysis    `json:"sprints" toon:"sprints"`
	Utilization    *utilization.Analysis `json:"utilization" toon:"utilization"`
	Velocity       *velocity.Analysis    `json:"velocity" toon:"velocity"`
	Progress       *subtask.Analysis     `json:"progress" toon:"progress"`
}

// Build analyzes snap. Sprint health (and its burndown) is computed for every
// sprint in parallel, in start date order. meta.GeneratedAt is used as the
// reference instant for days-left and defaults to time.Now.
func Build(ctx context.Context, snap *models.Snapshot, meta Metadata, s Settings) (*Report, error) {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}
	meta.Issues = len(snap.Issues)
	meta.Sprints = len(snap.Sprints)
	meta.Users = len(snap.Users)

	sprints := make([]models.Sprint, len(snap.Sprints))
	copy(sprints, snap.Sprints)
	sort.SliceStable(sprints, func(i, j int) bool {
		return sprints[i].StartDate.Before(sprints[j].StartDate)
	})

	bopts := s.BurndownOptions()
	healths, err := analyzer.MapN(ctx, sprints, s.Workers,
		func(sp models.Sprint) string { return sp.Name },
		func(_ context.Context, sp models.Sprint) (*health.Analysis, error) {
			return health.Analyze(sp, snap.Issues, meta.GeneratedAt, bopts...), nil
		})
	if err != nil {
		return nil, fmt.Errorf("analyze sprints: %w", err)
	}
	if healths == nil {
		healths = []*health.Analysis{}
	}

	r := &Report{
		Metadata: meta,
		Sprints:  healths,
		Velocity: s.Velocity().Analyze(snap),
		Progress: subtask.Analyze(snap.Issues),
	}
	if active := snap.ActiveSprint(); active != nil {
		r.ActiveSprintID = active.ID
	}
	r.Utilization = s.Utilization().Analyze(snap.Issues, r.ActiveSprintID)
	return r, nil
}

// Refresh moves the report's reference instant to now, updating days left.
// A report restored from cache is refreshed before it is shown.
func (r *Report) Refresh(now time.Time) {
	r.Metadata.GeneratedAt = now
	for _, h := range r.Sprints {
		h.Refresh(now)
	}
}

// Active returns the health of the active sprint, or nil.
func (r *Report) Active() *health.Analysis {
	if r.ActiveSprintID == "" {
		return nil
	}
	for _, h := range r.Sprints {
		if h.SprintID == r.ActiveSprintID {
			return h
		}
	}
	return nil
}

func (r *Report) view() *output.Report {
	meta := &output.Section{Title: "Snapshot", Fields: []output.Field{
		{Label: "Source", Value: r.Metadata.Source},
		{Label: "Generated", Value: r.Metadata.GeneratedAt.Format(time.RFC3339)},
		{Label: "Issues", Value: fmt.Sprint(r.Metadata.Issues)},
		{Label: "Sprints", Value: fmt.Sprint(r.Metadata.Sprints)},
		{Label: "Users", Value: fmt.Sprint(r.Metadata.Users)},
	}}
	if r.Metadata.Revision != "" {
		meta.Fields = append(meta.Fields, output.Field{Label: "Revision", Value: r.Metadata.Revision})
	}

	rows := make([][]string, 0, len(r.Sprints))
	var total, done int
	for _, h := range r.Sprints {
		rows = append(rows, []string{
			h.SprintName,
			fmt.Sprint(h.TotalIssues),
			fmt.Sprintf("%d/%d", h.CompletedPoints, h.TotalPoints),
			fmt.Sprintf("%.0f%%", h.Progress),
			fmt.Sprint(h.TasksInReview),
		})
		total += h.TotalPoints
		done += h.CompletedPoints
	}
	sprints := output.NewTable("Sprints",
		[]string{"Sprint", "Issues", "Points", "Progress", "In Review"},
		rows,
		[]string{"Total", "", fmt.Sprintf("%d/%d", done, total), "", ""},
		r.Sprints)

	parts := []output.Part{
		{Key: "metadata", Body: meta},
		{Key: "sprints", Body: sprints},
	}
	if active := r.Active(); active != nil {
		parts = append(parts, output.Part{Key: "active", Body: active})
	}
	parts = append(parts,
		output.Part{Key: "utilization", Body: r.Utilization},
		output.Part{Key: "velocity", Body: r.Velocity},
		output.Part{Key: "progress", Body: r.Progress},
	)
	return &output.Report{Title: "Sprint Report", Parts: parts}
}

// RenderText implements output.Renderable.
func (r *Report) RenderText(w io.Writer, colored bool) error {
	return r.view().RenderText(w, colored)
}

// RenderMarkdown implements output.Renderable.
func (r *Report) RenderMarkdown(w io.Writer) error {
	return r.view().RenderMarkdown(w)
}

// RenderData returns the report itself so that JSON output round-trips.
func (r *Report) RenderData() any {
	return r
}
