package subtask

// Group is the completion state of the subtasks sharing one parent.
type Group struct {
	ParentID    string   `json:"parent_id" toon:"parent_id"`
	ParentTitle string   `json:"parent_title,omitempty" toon:"parent_title,omitempty"`
	Total       int      `json:"total" toon:"total"`
	Done        int      `json:"done" toon:"done"`
	Progress    int      `json:"progress" toon:"progress"` // 0-100
	Subtasks    []string `json:"subtasks" toon:"subtasks"`
}

// Summary aggregates all groups.
type Summary struct {
	Parents       int `json:"parents" toon:"parents"`
	Subtasks      int `json:"subtasks" toon:"subtasks"`
	Completed     int `json:"completed" toon:"completed"`
	FullyComplete int `json:"fully_complete" toon:"fully_complete"`
}

// Analysis is the subtask progress report.
type Analysis struct {
	Groups  []Group `json:"groups" toon:"groups"`
	Summary Summary `json:"summary" toon:"summary"`
}

// IssueProgress is the progress reported for a single issue.
type IssueProgress struct {
	IssueID  string `json:"issue_id" toon:"issue_id"`
	ParentID string `json:"parent_id,omitempty" toon:"parent_id,omitempty"`
	Progress int    `json:"progress" toon:"progress"`
}

func (a *Analysis) calculateSummary() {
	a.Summary = Summary{Parents: len(a.Groups)}
	for _, g := range a.Groups {
		a.Summary.Subtasks += g.Total
		a.Summary.Completed += g.Done
		if g.Total > 0 && g.Done == g.Total {
			a.Summary.FullyComplete++
		}
	}
}

// IssueList is the result of a per-issue progress lookup.
type IssueList struct {
	Issues  []IssueProgress `json:"issues" toon:"issues"`
	Missing []string        `json:"missing,omitempty" toon:"missing,omitempty"`
}
