package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/sprintlens/internal/output"
	"github.com/panbanda/sprintlens/internal/report"
	"github.com/panbanda/sprintlens/pkg/analyzer/assign"
	"github.com/panbanda/sprintlens/pkg/analyzer/burndown"
	"github.com/panbanda/sprintlens/pkg/analyzer/health"
	"github.com/panbanda/sprintlens/pkg/analyzer/personal"
	"github.com/panbanda/sprintlens/pkg/analyzer/subtask"
	"github.com/panbanda/sprintlens/pkg/analyzer/team"
	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/rbac"
	"github.com/panbanda/sprintlens/pkg/snapshot"
)

// SnapshotInput is the base input for all tools.
type SnapshotInput struct {
	Snapshot string `json:"snapshot,omitempty" jsonschema:"Path to the snapshot file (.json, .yaml, .toml or .obf). Defaults to the server's configured snapshot."`
	Revision string `json:"revision,omitempty" jsonschema:"Git revision to read the snapshot from (HEAD~1, a tag, a hash). Defaults to the working copy."`
	Format   string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// ProgressInput selects issues for calculate_progress.
type ProgressInput struct {
	SnapshotInput
	IssueIDs []string `json:"issue_ids,omitempty" jsonschema:"Issues to report. When empty every parent with subtasks is summarized."`
}

// SprintInput selects a sprint.
type SprintInput struct {
	SnapshotInput
	SprintID string `json:"sprint_id,omitempty" jsonschema:"Sprint to analyze. Defaults to the active sprint."`
}

// BurndownInput adds burndown options.
type BurndownInput struct {
	SprintInput
	Attribution string `json:"attribution,omitempty" jsonschema:"Which Done transition counts when an issue was reopened: first (default) or last."`
}

// VelocityInput adds velocity options.
type VelocityInput struct {
	SnapshotInput
	Window int `json:"window,omitempty" jsonschema:"Number of most recent completed sprints to fit. Minimum 2. Default 5."`
}

// AssignInput selects tasks for suggest_assignments.
type AssignInput struct {
	SnapshotInput
	SprintID        string `json:"sprint_id,omitempty" jsonschema:"Only plan tasks in this sprint. Defaults to every open task."`
	IncludeAssigned bool   `json:"include_assigned,omitempty" jsonschema:"Also plan open tasks that already have an assignee. Default false."`
}

// TeamInput scopes team_metrics.
type TeamInput struct {
	SnapshotInput
	SprintID string `json:"sprint_id,omitempty" jsonschema:"Only count issues in this sprint. Defaults to all issues."`
}

// DashboardInput names the user for personal_dashboard.
type DashboardInput struct {
	SnapshotInput
	UserID string `json:"user_id" jsonschema:"User id, as issues carry it in assignee."`
}

// PermissionInput describes a permission question.
type PermissionInput struct {
	SnapshotInput
	Role     string `json:"role" jsonschema:"Role: Admin, Product Owner, Developer, Designer or Viewer."`
	Resource string `json:"resource,omitempty" jsonschema:"Resource: issues or sprints. Default issues."`
	Action   string `json:"action" jsonschema:"Action: create, read, update or delete."`
	IssueID  string `json:"issue_id,omitempty" jsonschema:"Issue for an update check; the assignee rule then applies and the snapshot is read."`
	UserID   string `json:"user_id,omitempty" jsonschema:"Acting user, compared with the issue assignee."`
}

func getFormat(input SnapshotInput) output.Format {
	switch strings.ToLower(input.Format) {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data output.Renderable, format output.Format) (string, error) {
	switch format {
	case output.FormatJSON:
		out, err := json.MarshalIndent(data.RenderData(), "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	case output.FormatMarkdown:
		var buf bytes.Buffer
		if err := data.RenderMarkdown(&buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		out, err := output.MarshalTOON(data.RenderData())
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

func toolResult(data output.Renderable, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) source(input SnapshotInput) snapshot.Source {
	path := input.Snapshot
	if path == "" {
		path = s.snapshot
	}
	return snapshot.Source{Path: path, Revision: input.Revision}
}

func (s *Server) load(input SnapshotInput) (*models.Snapshot, error) {
	src := s.source(input)
	snap, _, err := s.loader.Open(s.opener, src)
	if err != nil {
		s.log.Warn().Err(err).Str("source", src.String()).Msg("snapshot load failed")
		return nil, err
	}
	return snap, nil
}

// Tool handlers

func (s *Server) handleCalculateProgress(ctx context.Context, req *mcp.CallToolRequest, input ProgressInput) (*mcp.CallToolResult, any, error) {
	snap, err := s.load(input.SnapshotInput)
	if err != nil {
		return toolError(err.Error())
	}
	format := getFormat(input.SnapshotInput)

	if len(input.IssueIDs) == 0 {
		return toolResult(subtask.Analyze(snap.Issues), format)
	}
	list := subtask.ForIssues(snap.Issues, input.IssueIDs)
	if len(list.Issues) == 0 {
		return toolError(fmt.Sprintf("no such issues: %s", strings.Join(list.Missing, ", ")))
	}
	return toolResult(list, format)
}

func (s *Server) handleGenerateBurndown(ctx context.Context, req *mcp.CallToolRequest, input BurndownInput) (*mcp.CallToolResult, any, error) {
	settings := s.settings
	if input.Attribution != "" {
		a := burndown.Attribution(strings.ToLower(input.Attribution))
		if !a.Valid() {
			return toolError(fmt.Sprintf("attribution %q must be first or last", input.Attribution))
		}
		settings.Attribution = a
	}

	snap, err := s.load(input.SnapshotInput)
	if err != nil {
		return toolError(err.Error())
	}
	sprint, err := snapshot.SelectSprint(snap, input.SprintID)
	if err != nil {
		return toolError(err.Error())
	}
	a := burndown.Analyze(*sprint, snap.IssuesInSprint(sprint.ID), settings.BurndownOptions()...)
	return toolResult(a, getFormat(input.SnapshotInput))
}

func (s *Server) handleEngineerUtilization(ctx context.Context, req *mcp.CallToolRequest, input SprintInput) (*mcp.CallToolResult, any, error) {
	snap, err := s.load(input.SnapshotInput)
	if err != nil {
		return toolError(err.Error())
	}
	sprintID := input.SprintID
	if sprintID == "" {
		if active := snap.ActiveSprint(); active != nil {
			sprintID = active.ID
		}
	} else if _, ok := snap.SprintByID(sprintID); !ok {
		return toolError(fmt.Sprintf("%v: %s", snapshot.ErrUnknownSprint, sprintID))
	}
	a := s.settings.Utilization().Analyze(snap.Issues, sprintID)
	return toolResult(a, getFormat(input.SnapshotInput))
}

func (s *Server) handleSprintHealth(ctx context.Context, req *mcp.CallToolRequest, input SprintInput) (*mcp.CallToolResult, any, error) {
	snap, err := s.load(input.SnapshotInput)
	if err != nil {
		return toolError(err.Error())
	}
	sprint, err := snapshot.SelectSprint(snap, input.SprintID)
	if err != nil {
		return toolError(err.Error())
	}
	a := health.Analyze(*sprint, snap.Issues, s.now(), s.settings.BurndownOptions()...)
	return toolResult(a, getFormat(input.SnapshotInput))
}

func (s *Server) handleVelocityTrend(ctx context.Context, req *mcp.CallToolRequest, input VelocityInput) (*mcp.CallToolResult, any, error) {
	settings := s.settings
	if input.Window != 0 {
		if input.Window < 2 {
			return toolError("window must be at least 2")
		}
		settings.Window = input.Window
	}
	snap, err := s.load(input.SnapshotInput)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(settings.Velocity().Analyze(snap), getFormat(input.SnapshotInput))
}

func (s *Server) handleTeamMetrics(ctx context.Context, req *mcp.CallToolRequest, input TeamInput) (*mcp.CallToolResult, any, error) {
	snap, err := s.load(input.SnapshotInput)
	if err != nil {
		return toolError(err.Error())
	}
	issues := snap.Issues
	if input.SprintID != "" {
		if _, ok := snap.SprintByID(input.SprintID); !ok {
			return toolError(fmt.Sprintf("%v: %s", snapshot.ErrUnknownSprint, input.SprintID))
		}
		issues = snap.IssuesInSprint(input.SprintID)
	}
	return toolResult(team.Analyze(snap.Users, issues, input.SprintID), getFormat(input.SnapshotInput))
}

func (s *Server) handleSuggestAssignments(ctx context.Context, req *mcp.CallToolRequest, input AssignInput) (*mcp.CallToolResult, any, error) {
	snap, err := s.load(input.SnapshotInput)
	if err != nil {
		return toolError(err.Error())
	}
	if input.SprintID != "" {
		if _, ok := snap.SprintByID(input.SprintID); !ok {
			return toolError(fmt.Sprintf("%v: %s", snapshot.ErrUnknownSprint, input.SprintID))
		}
	}
	a := assign.Analyze(snap, assign.Options{SprintID: input.SprintID, IncludeAssigned: input.IncludeAssigned})
	return toolResult(a, getFormat(input.SnapshotInput))
}

func (s *Server) handlePersonalDashboard(ctx context.Context, req *mcp.CallToolRequest, input DashboardInput) (*mcp.CallToolResult, any, error) {
	if input.UserID == "" {
		return toolError("user_id is required")
	}
	snap, err := s.load(input.SnapshotInput)
	if err != nil {
		return toolError(err.Error())
	}
	d, err := personal.Analyze(snap, input.UserID, s.now())
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(d, getFormat(input.SnapshotInput))
}

func (s *Server) handleSprintReport(ctx context.Context, req *mcp.CallToolRequest, input SnapshotInput) (*mcp.CallToolResult, any, error) {
	snap, err := s.load(input)
	if err != nil {
		return toolError(err.Error())
	}
	src := s.source(input)
	r, err := report.Build(ctx, snap, report.Metadata{
		Source:      src.Path,
		Revision:    src.Revision,
		GeneratedAt: s.now(),
	}, s.settings)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(r, getFormat(input))
}

func (s *Server) handleCheckPermission(ctx context.Context, req *mcp.CallToolRequest, input PermissionInput) (*mcp.CallToolResult, any, error) {
	role, err := rbac.ParseRole(input.Role)
	if err != nil {
		return toolError(err.Error())
	}
	action, err := rbac.ParseAction(strings.ToLower(input.Action))
	if err != nil {
		return toolError(err.Error())
	}
	resource := input.Resource
	if resource == "" {
		resource = rbac.ResourceIssues
	}

	var issue *models.Issue
	if input.IssueID != "" {
		snap, err := s.load(input.SnapshotInput)
		if err != nil {
			return toolError(err.Error())
		}
		found, ok := snap.IssueByID(input.IssueID)
		if !ok {
			return toolError(fmt.Sprintf("unknown issue: %s", input.IssueID))
		}
		issue = found
	}
	return toolResult(rbac.Check(role, resource, action, issue, input.UserID), getFormat(input.SnapshotInput))
}
