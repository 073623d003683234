package assign

import "github.com/panbanda/sprintlens/pkg/models"

// Skill is a work area inferred from an issue title.
type Skill string

const (
	SkillFrontend Skill = "Frontend"
	SkillBackend  Skill = "Backend"
	SkillDesign   Skill = "Design"
)

// String implements fmt.Stringer for toon serialization.
func (s Skill) String() string { return string(s) }

// Suggestion pairs one task with the member it would go to.
type Suggestion struct {
	IssueID  string          `json:"issue_id" toon:"issue_id"`
	Title    string          `json:"title" toon:"title"`
	Priority models.Priority `json:"priority" toon:"priority"`
	UserID   string          `json:"user_id" toon:"user_id"`
}

// Group is the round-robin plan for one skill.
type Group struct {
	Skill       Skill        `json:"skill" toon:"skill"`
	Members     []string     `json:"members" toon:"members"` // rotation order
	Suggestions []Suggestion `json:"suggestions" toon:"suggestions"`
}

// Analysis is the assignment plan for a set of open tasks.
type Analysis struct {
	SprintID  string   `json:"sprint_id,omitempty" toon:"sprint_id,omitempty"`
	Tasks     int      `json:"tasks" toon:"tasks"`
	Groups    []Group  `json:"groups" toon:"groups"`
	Unstaffed []Skill  `json:"unstaffed,omitempty" toon:"unstaffed,omitempty"` // skills with tasks but no suitable member
	Unmatched []string `json:"unmatched,omitempty" toon:"unmatched,omitempty"` // task ids no keyword matched
}
