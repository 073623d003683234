package testutil

import (
	"encoding/json"
	"testing"

	"github.com/panbanda/sprintlens/pkg/models"
)

// SampleSnapshot returns a small team history with dates in UTC:
//
//	s1 Completed Jan 1-14 2024, velocity 8
//	s2 Completed Jan 15-28, velocity 12
//	s3 Active Jan 29-Feb 11, 5 of 18 points done
//	s4 Planned Feb 12-25, no issues
//
// Issue p in s3 has two subtasks, one Done; the open one (p2) is Todo.
// f is P0 and g, p are P1. Users are keyed by the assignee ids.
func SampleSnapshot() *models.Snapshot {
	capacity := 6.0
	return &models.Snapshot{
		Sprints: []models.Sprint{
			NewSprint("s1", models.SprintCompleted, Day(2024, 1, 1), Day(2024, 1, 14)),
			NewSprint("s2", models.SprintCompleted, Day(2024, 1, 15), Day(2024, 1, 28)),
			NewSprint("s3", models.SprintActive, Day(2024, 1, 29), Day(2024, 2, 11)),
			NewSprint("s4", models.SprintPlanned, Day(2024, 2, 12), Day(2024, 2, 25)),
		},
		Issues: []models.Issue{
			NewIssue("a", WithSprint("s1"), WithAssignee("alice"), WithPoints(5), DoneOn(Day(2024, 1, 5))),
			NewIssue("b", WithSprint("s1"), WithAssignee("bob"), WithPoints(3), DoneOn(Day(2024, 1, 10))),
			NewIssue("c", WithSprint("s2"), WithAssignee("alice"), WithPoints(8), DoneOn(Day(2024, 1, 20))),
			NewIssue("d", WithSprint("s2"), WithAssignee("bob"), WithPoints(4), DoneOn(Day(2024, 1, 25))),
			NewIssue("e", WithSprint("s3"), WithAssignee("alice"), WithPoints(5), DoneOn(Day(2024, 2, 1))),
			NewIssue("f", WithSprint("s3"), WithAssignee("bob"), WithPoints(3), WithStatus(models.StatusInReview),
				WithTitle("Frontend settings page"), WithPriority(models.PriorityP0)),
			NewIssue("g", WithSprint("s3"), WithAssignee("carol"), WithPoints(2),
				WithTitle("Design onboarding UI"), WithPriority(models.PriorityP1)),
			NewIssue("p", WithSprint("s3"), WithAssignee("alice"), WithPoints(8), WithStatus(models.StatusInProgress),
				WithTitle("Login flow"), WithPriority(models.PriorityP1)),
			NewIssue("p1", WithSprint("s3"), WithParent("p"), WithAssignee("alice"), DoneOn(Day(2024, 1, 30))),
			NewIssue("p2", WithSprint("s3"), WithParent("p"), WithAssignee("carol"), WithTitle("Login API backend")),
		},
		Users: []models.User{
			{ID: "alice", Name: "Alice Nowak", Role: models.RoleDeveloper, Capacity: &capacity, Skills: []string{"backend"}},
			{ID: "bob", Name: "Bob Lis", Role: models.RoleDeveloper},
			{ID: "carol", Name: "Carol Wrona", Role: models.RoleDesigner, Skills: []string{"design", "frontend"}},
		},
	}
}

// SampleSnapshotJSON returns SampleSnapshot encoded as JSON.
func SampleSnapshotJSON(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(SampleSnapshot())
	if err != nil {
		t.Fatalf("marshal sample snapshot: %v", err)
	}
	return data
}

// WriteSampleSnapshot writes SampleSnapshot as JSON under dir and returns
// the path.
func WriteSampleSnapshot(t *testing.T, dir string) string {
	t.Helper()
	return WriteFile(t, dir, "snapshot.json", string(SampleSnapshotJSON(t)))
}
