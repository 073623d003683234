package team

import "github.com/panbanda/sprintlens/pkg/models"

// MemberMetrics is one team member's task completion.
type MemberMetrics struct {
	UserID         string      `json:"user_id" toon:"user_id"`
	Name           string      `json:"name" toon:"name"`
	Role           models.Role `json:"role" toon:"role"`
	Tasks          int         `json:"tasks" toon:"tasks"`
	Completed      int         `json:"completed" toon:"completed"`
	CompletionRate int         `json:"completion_rate" toon:"completion_rate"` // rounded percent
}

// Analysis is the team performance summary.
type Analysis struct {
	SprintID              string          `json:"sprint_id,omitempty" toon:"sprint_id,omitempty"`
	Members               []MemberMetrics `json:"members" toon:"members"`
	AverageCompletionRate int             `json:"average_completion_rate" toon:"average_completion_rate"`
	BacklogSize           int             `json:"backlog_size" toon:"backlog_size"` // Todo issues
	Unassigned            int             `json:"unassigned" toon:"unassigned"`
}

// Member returns the metrics for userID.
func (a *Analysis) Member(userID string) (MemberMetrics, bool) {
	for _, m := range a.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return MemberMetrics{}, false
}
