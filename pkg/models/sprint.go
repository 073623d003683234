package models

import (
	"strings"
	"time"
)

// SprintStatus is the lifecycle state of a sprint.
type SprintStatus string

const (
	SprintPlanned   SprintStatus = "Planned"
	SprintActive    SprintStatus = "Active"
	SprintCompleted SprintStatus = "Completed"
)

// Valid reports whether s is a known sprint status.
func (s SprintStatus) Valid() bool {
	switch s {
	case SprintPlanned, SprintActive, SprintCompleted:
		return true
	}
	return false
}

// Sprint is a time-boxed container of issues. Issues point at their sprint
// through Issue.SprintID; the sprint does not enumerate them.
type Sprint struct {
	ID        string       `json:"id" toon:"id"`
	Name      string       `json:"name" toon:"name"`
	Status    SprintStatus `json:"status" toon:"status"`
	StartDate time.Time    `json:"startDate" toon:"startDate"`
	EndDate   time.Time    `json:"endDate" toon:"endDate"`
	CreatedAt time.Time    `json:"createdAt" toon:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" toon:"updatedAt"`
}

// Role is a team member's role, used by permission checks.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleProductOwner Role = "Product Owner"
	RoleDeveloper    Role = "Developer"
	RoleDesigner     Role = "Designer"
	RoleViewer       Role = "Viewer"
)

// User is a team member.
type User struct {
	ID       string   `json:"id" toon:"id"`
	Name     string   `json:"name" toon:"name"`
	Role     Role     `json:"role" toon:"role"`
	Capacity *float64 `json:"capacity,omitempty" toon:"capacity,omitempty"` // hours per day
	Skills   []string `json:"skills,omitempty" toon:"skills,omitempty"`
}

// HasSkill reports whether skill is listed for u, ignoring case.
func (u User) HasSkill(skill string) bool {
	for _, s := range u.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}
