// Package team reports per-member task completion across the snapshot.
package team

import (
	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/stats"
)

// Metrics returns one entry per user, in user order. Issues are matched to
// users by assignee id. Users without issues report zero tasks and a 0% rate.
func Metrics(users []models.User, issues []models.Issue) []MemberMetrics {
	index := make(map[string]int, len(users))
	out := make([]MemberMetrics, len(users))
	for i, u := range users {
		index[u.ID] = i
		out[i] = MemberMetrics{UserID: u.ID, Name: u.Name, Role: u.Role}
	}

	for _, issue := range issues {
		i, ok := index[issue.Assignee]
		if !ok {
			continue
		}
		out[i].Tasks++
		if issue.Status == models.StatusDone {
			out[i].Completed++
		}
	}

	for i := range out {
		if out[i].Tasks > 0 {
			out[i].CompletionRate = stats.RoundHalfUp(float64(out[i].Completed) * 100 / float64(out[i].Tasks))
		}
	}
	return out
}

// Analyze computes member metrics over issues. sprintID only labels the
// result; callers pass the issues already scoped to it.
func Analyze(users []models.User, issues []models.Issue, sprintID string) *Analysis {
	a := &Analysis{SprintID: sprintID, Members: Metrics(users, issues)}

	rates := make([]float64, len(a.Members))
	for i, m := range a.Members {
		rates[i] = float64(m.CompletionRate)
	}
	mean, _ := stats.MeanStdDev(rates)
	a.AverageCompletionRate = stats.RoundHalfUp(mean)

	for _, issue := range issues {
		if issue.Status == models.StatusTodo {
			a.BacklogSize++
		}
		if issue.Assignee == "" {
			a.Unassigned++
		}
	}
	return a
}
