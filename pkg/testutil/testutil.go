// Package testutil provides builders for snapshot fixtures used in tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/panbanda/sprintlens/pkg/models"
)

// Day returns midnight UTC of the given calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Points returns a pointer to a story point estimate.
func Points(n int) *int {
	return &n
}

// IssueOption customizes an issue built by NewIssue.
type IssueOption func(*models.Issue)

// NewIssue builds an issue in status Todo with priority P2.
func NewIssue(id string, opts ...IssueOption) models.Issue {
	issue := models.Issue{
		ID:       id,
		Title:    "Issue " + id,
		Priority: models.PriorityP2,
		Status:   models.StatusTodo,
	}
	for _, opt := range opts {
		opt(&issue)
	}
	return issue
}

// WithStatus sets the current status.
func WithStatus(s models.IssueStatus) IssueOption {
	return func(i *models.Issue) { i.Status = s }
}

// WithTitle sets the title.
func WithTitle(title string) IssueOption {
	return func(i *models.Issue) { i.Title = title }
}

// WithPriority sets the priority.
func WithPriority(p models.Priority) IssueOption {
	return func(i *models.Issue) { i.Priority = p }
}

// WithAssignee sets the assignee.
func WithAssignee(a string) IssueOption {
	return func(i *models.Issue) { i.Assignee = a }
}

// WithSprint sets the sprint back-reference.
func WithSprint(id string) IssueOption {
	return func(i *models.Issue) { i.SprintID = id }
}

// WithParent marks the issue as a subtask of parent.
func WithParent(parent string) IssueOption {
	return func(i *models.Issue) { i.ParentID = parent }
}

// WithPoints sets the story point estimate.
func WithPoints(n int) IssueOption {
	return func(i *models.Issue) { i.StoryPoints = Points(n) }
}

// WithHistory appends a status transition.
func WithHistory(s models.IssueStatus, at time.Time) IssueOption {
	return func(i *models.Issue) {
		i.StatusHistory = append(i.StatusHistory, models.StatusChange{Status: s, Date: at})
	}
}

// DoneOn marks the issue Done and records the transition at the given time.
func DoneOn(at time.Time) IssueOption {
	return func(i *models.Issue) {
		i.Status = models.StatusDone
		i.StatusHistory = append(i.StatusHistory, models.StatusChange{Status: models.StatusDone, Date: at})
	}
}

// NewSprint builds a sprint spanning start..end.
func NewSprint(id string, status models.SprintStatus, start, end time.Time) models.Sprint {
	return models.Sprint{
		ID:        id,
		Name:      "Sprint " + id,
		Status:    status,
		StartDate: start,
		EndDate:   end,
	}
}

// WriteFile writes content under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
	return path
}
