package models

// Snapshot is an immutable view of the tracker state that every analyzer
// reads from. Analyzers never modify it.
type Snapshot struct {
	Issues  []Issue  `json:"issues" toon:"issues"`
	Sprints []Sprint `json:"sprints" toon:"sprints"`
	Users   []User   `json:"users,omitempty" toon:"users,omitempty"`
}

// ActiveSprint returns the first sprint marked Active, or nil.
// At most one sprint should be active but this is not enforced.
func (s *Snapshot) ActiveSprint() *Sprint {
	for i := range s.Sprints {
		if s.Sprints[i].Status == SprintActive {
			return &s.Sprints[i]
		}
	}
	return nil
}

// SprintByID looks up a sprint.
func (s *Snapshot) SprintByID(id string) (*Sprint, bool) {
	for i := range s.Sprints {
		if s.Sprints[i].ID == id {
			return &s.Sprints[i], true
		}
	}
	return nil, false
}

// IssueByID looks up an issue.
func (s *Snapshot) IssueByID(id string) (*Issue, bool) {
	for i := range s.Issues {
		if s.Issues[i].ID == id {
			return &s.Issues[i], true
		}
	}
	return nil, false
}

// IssuesInSprint returns the issues whose SprintID matches id, in snapshot order.
func (s *Snapshot) IssuesInSprint(id string) []Issue {
	var out []Issue
	for _, issue := range s.Issues {
		if issue.SprintID == id {
			out = append(out, issue)
		}
	}
	return out
}

// UserByID looks up a team member.
func (s *Snapshot) UserByID(id string) (*User, bool) {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i], true
		}
	}
	return nil, false
}
