package personal

import (
	"time"

	"github.com/panbanda/sprintlens/pkg/models"
)

// IssueRef is the part of an issue a dashboard lists.
type IssueRef struct {
	ID       string             `json:"id" toon:"id"`
	Title    string             `json:"title" toon:"title"`
	Priority models.Priority    `json:"priority" toon:"priority"`
	Status   models.IssueStatus `json:"status" toon:"status"`
	SprintID string             `json:"sprint_id,omitempty" toon:"sprint_id,omitempty"`
	Points   int                `json:"points" toon:"points"`
}

// SprintStatus summarizes the active sprint for the whole team.
type SprintStatus struct {
	SprintID string    `json:"sprint_id" toon:"sprint_id"`
	Name     string    `json:"name" toon:"name"`
	EndDate  time.Time `json:"end_date" toon:"end_date"`
	Issues   int       `json:"issues" toon:"issues"`
	Done     int       `json:"done" toon:"done"`
	Progress int       `json:"progress" toon:"progress"` // rounded percent of issues Done
	Blocked  int       `json:"blocked" toon:"blocked"`   // Todo subtasks
	DaysLeft int       `json:"days_left" toon:"days_left"`
}

// Dashboard is one user's view of their work.
type Dashboard struct {
	UserID         string        `json:"user_id" toon:"user_id"`
	Name           string        `json:"name,omitempty" toon:"name,omitempty"`
	Role           models.Role   `json:"role,omitempty" toon:"role,omitempty"`
	Todo           []IssueRef    `json:"todo" toon:"todo"`
	InProgress     []IssueRef    `json:"in_progress" toon:"in_progress"`
	InReview       []IssueRef    `json:"in_review" toon:"in_review"`
	Urgent         []IssueRef    `json:"urgent" toon:"urgent"`
	Completed      int           `json:"completed" toon:"completed"`
	CompletionRate int           `json:"completion_rate" toon:"completion_rate"`
	Sprint         *SprintStatus `json:"sprint,omitempty" toon:"sprint,omitempty"`
}
