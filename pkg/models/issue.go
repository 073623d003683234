package models

import "time"

// Priority is an issue urgency tier. P0 is the most urgent.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
	PriorityP4 Priority = "P4"
	PriorityP5 Priority = "P5"
)

var priorityRanks = map[Priority]int{
	PriorityP0: 0,
	PriorityP1: 1,
	PriorityP2: 2,
	PriorityP3: 3,
	PriorityP4: 4,
	PriorityP5: 5,
}

// Rank returns the ordinal of the priority (0 is most urgent).
// Unknown priorities rank after P5.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks)
}

// Valid reports whether p is one of the six known tiers.
func (p Priority) Valid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// IssueStatus is a workflow state. The workflow is linear but transitions
// are not required to be monotonic (issues can be reopened).
type IssueStatus string

const (
	StatusTodo       IssueStatus = "Todo"
	StatusInProgress IssueStatus = "In Progress"
	StatusInReview   IssueStatus = "In Review"
	StatusDone       IssueStatus = "Done"
)

// Valid reports whether s is a known status.
func (s IssueStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusDone:
		return true
	}
	return false
}

// StatusChange records one observed status transition.
type StatusChange struct {
	Status IssueStatus `json:"status" toon:"status"`
	Date   time.Time   `json:"date" toon:"date"`
}

// Issue is the atomic unit of trackable work.
type Issue struct {
	ID            string         `json:"id" toon:"id"`
	Title         string         `json:"title" toon:"title"`
	Description   string         `json:"description,omitempty" toon:"description,omitempty"`
	Priority      Priority       `json:"priority" toon:"priority"`
	Status        IssueStatus    `json:"status" toon:"status"`
	Assignee      string         `json:"assignee,omitempty" toon:"assignee,omitempty"`
	SprintID      string         `json:"sprintId,omitempty" toon:"sprintId,omitempty"`
	ParentID      string         `json:"parentId,omitempty" toon:"parentId,omitempty"`
	StoryPoints   *int           `json:"storyPoints,omitempty" toon:"storyPoints,omitempty"`
	StatusHistory []StatusChange `json:"statusHistory,omitempty" toon:"statusHistory,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" toon:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" toon:"updatedAt"`
}

// IsSubtask reports whether the issue belongs to a parent issue.
func (i Issue) IsSubtask() bool {
	return i.ParentID != ""
}

// Points returns the story point estimate, treating a missing estimate as 0.
func (i Issue) Points() int {
	if i.StoryPoints == nil {
		return 0
	}
	return *i.StoryPoints
}

// FirstDone returns the earliest-recorded Done transition in history order.
func (i Issue) FirstDone() (time.Time, bool) {
	for _, h := range i.StatusHistory {
		if h.Status == StatusDone {
			return h.Date, true
		}
	}
	return time.Time{}, false
}

// LastDone returns the latest-recorded Done transition in history order.
func (i Issue) LastDone() (time.Time, bool) {
	for j := len(i.StatusHistory) - 1; j >= 0; j-- {
		if i.StatusHistory[j].Status == StatusDone {
			return i.StatusHistory[j].Date, true
		}
	}
	return time.Time{}, false
}
