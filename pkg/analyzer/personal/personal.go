// Package personal builds a single user's dashboard: their open work by
// status, their most urgent issues and where the active sprint stands.
package personal

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/panbanda/sprintlens/pkg/analyzer/health"
	"github.com/panbanda/sprintlens/pkg/analyzer/team"
	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/stats"
)

// MaxUrgent caps the urgent list.
const MaxUrgent = 3

// ErrUnknownUser is returned for a user that is neither a team member nor
// the assignee of any issue.
var ErrUnknownUser = errors.New("unknown user")

// Urgent returns the open P0 and P1 issues, most urgent first and in input
// order within a tier, capped at MaxUrgent.
func Urgent(issues []models.Issue) []models.Issue {
	var out []models.Issue
	for _, issue := range issues {
		if issue.Status != models.StatusDone && issue.Priority.Rank() <= models.PriorityP1.Rank() {
			out = append(out, issue)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	if len(out) > MaxUrgent {
		out = out[:MaxUrgent]
	}
	return out
}

// Sprint summarizes sprint over all of its issues. Blocked counts subtasks
// still in Todo.
func Sprint(sprint models.Sprint, issues []models.Issue, now time.Time) *SprintStatus {
	s := &SprintStatus{
		SprintID: sprint.ID,
		Name:     sprint.Name,
		EndDate:  sprint.EndDate,
		DaysLeft: health.DaysLeft(sprint.EndDate, now),
	}
	for _, issue := range issues {
		if issue.SprintID != sprint.ID {
			continue
		}
		s.Issues++
		switch {
		case issue.Status == models.StatusDone:
			s.Done++
		case issue.Status == models.StatusTodo && issue.IsSubtask():
			s.Blocked++
		}
	}
	if s.Issues > 0 {
		s.Progress = stats.RoundHalfUp(float64(s.Done) * 100 / float64(s.Issues))
	}
	return s
}

// Analyze builds the dashboard for userID. now is the reference instant
// for the active sprint's days left.
func Analyze(snap *models.Snapshot, userID string, now time.Time) (*Dashboard, error) {
	d := &Dashboard{
		UserID:     userID,
		Todo:       []IssueRef{},
		InProgress: []IssueRef{},
		InReview:   []IssueRef{},
		Urgent:     []IssueRef{},
	}
	user, known := snap.UserByID(userID)
	if known {
		d.Name = user.Name
		d.Role = user.Role
	}

	var mine []models.Issue
	for _, issue := range snap.Issues {
		if issue.Assignee == userID {
			mine = append(mine, issue)
		}
	}
	if !known && len(mine) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}

	for _, issue := range mine {
		ref := refOf(issue)
		switch issue.Status {
		case models.StatusTodo:
			d.Todo = append(d.Todo, ref)
		case models.StatusInProgress:
			d.InProgress = append(d.InProgress, ref)
		case models.StatusInReview:
			d.InReview = append(d.InReview, ref)
		}
	}
	for _, issue := range Urgent(mine) {
		d.Urgent = append(d.Urgent, refOf(issue))
	}

	m := team.Metrics([]models.User{{ID: userID}}, mine)[0]
	d.Completed = m.Completed
	d.CompletionRate = m.CompletionRate

	if active := snap.ActiveSprint(); active != nil {
		d.Sprint = Sprint(*active, snap.Issues, now)
	}
	return d, nil
}

func refOf(issue models.Issue) IssueRef {
	return IssueRef{
		ID:       issue.ID,
		Title:    issue.Title,
		Priority: issue.Priority,
		Status:   issue.Status,
		SprintID: issue.SprintID,
		Points:   issue.Points(),
	}
}
