package team

import (
	"bytes"
	"testing"

	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	users := []models.User{
		{ID: "u1", Name: "Ann", Role: models.RoleDeveloper},
		{ID: "u2", Name: "Ben", Role: models.RoleDesigner},
		{ID: "u3", Name: "Idle"},
	}
	issues := []models.Issue{
		testutil.NewIssue("1", testutil.WithAssignee("u1"), testutil.WithStatus(models.StatusDone)),
		testutil.NewIssue("2", testutil.WithAssignee("u1"), testutil.WithStatus(models.StatusInProgress)),
		testutil.NewIssue("3", testutil.WithAssignee("u1")),
		testutil.NewIssue("4", testutil.WithAssignee("u2"), testutil.WithStatus(models.StatusDone)),
		testutil.NewIssue("5", testutil.WithAssignee("ghost"), testutil.WithStatus(models.StatusDone)),
		testutil.NewIssue("6"),
	}

	got := Metrics(users, issues)
	require.Len(t, got, 3)
	assert.Equal(t, MemberMetrics{UserID: "u1", Name: "Ann", Role: models.RoleDeveloper, Tasks: 3, Completed: 1, CompletionRate: 33}, got[0])
	assert.Equal(t, 100, got[1].CompletionRate)
	assert.Equal(t, MemberMetrics{UserID: "u3", Name: "Idle"}, got[2])
}

func TestMetrics_Rounding(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{1, 8, 13},
		{2, 3, 67},
		{1, 3, 33},
		{0, 4, 0},
	}
	for _, tt := range tests {
		var issues []models.Issue
		for i := 0; i < tt.total; i++ {
			opts := []testutil.IssueOption{testutil.WithAssignee("u")}
			if i < tt.done {
				opts = append(opts, testutil.WithStatus(models.StatusDone))
			}
			issues = append(issues, testutil.NewIssue(string(rune('a'+i)), opts...))
		}
		got := Metrics([]models.User{{ID: "u"}}, issues)
		assert.Equal(t, tt.want, got[0].CompletionRate, "%d/%d", tt.done, tt.total)
	}
}

func TestAnalyze_Sample(t *testing.T) {
	snap := testutil.SampleSnapshot()
	a := Analyze(snap.Users, snap.Issues, "")

	require.Len(t, a.Members, 3)
	alice, ok := a.Member("alice")
	require.True(t, ok)
	assert.Equal(t, 5, alice.Tasks)
	assert.Equal(t, 4, alice.Completed)
	assert.Equal(t, 80, alice.CompletionRate)

	bob, _ := a.Member("bob")
	assert.Equal(t, 67, bob.CompletionRate)
	carol, _ := a.Member("carol")
	assert.Equal(t, 0, carol.CompletionRate)

	assert.Equal(t, 49, a.AverageCompletionRate)
	assert.Equal(t, 2, a.BacklogSize)
	assert.Zero(t, a.Unassigned)

	_, ok = a.Member("nobody")
	assert.False(t, ok)
}

func TestAnalyze_SprintScope(t *testing.T) {
	snap := testutil.SampleSnapshot()
	a := Analyze(snap.Users, snap.IssuesInSprint("s3"), "s3")

	assert.Equal(t, "s3", a.SprintID)
	alice, _ := a.Member("alice")
	assert.Equal(t, 3, alice.Tasks) // e, p, p1
	assert.Equal(t, 67, alice.CompletionRate)
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil, []models.Issue{testutil.NewIssue("1")}, "")
	assert.Empty(t, a.Members)
	assert.Zero(t, a.AverageCompletionRate)
	assert.Equal(t, 1, a.BacklogSize)
	assert.Equal(t, 1, a.Unassigned)
}

func TestRender(t *testing.T) {
	snap := testutil.SampleSnapshot()
	a := Analyze(snap.Users, snap.Issues, "")

	var text bytes.Buffer
	require.NoError(t, a.RenderText(&text, false))
	assert.Contains(t, text.String(), "Team Performance (3 members)")
	assert.Contains(t, text.String(), "Alice Nowak")
	assert.Contains(t, text.String(), "Average completion rate: 49%")

	var md bytes.Buffer
	require.NoError(t, a.RenderMarkdown(&md))
	assert.Contains(t, md.String(), "| alice | Alice Nowak | 5 | 4 | 80% |")

	text.Reset()
	require.NoError(t, Analyze(nil, nil, "").RenderText(&text, false))
	assert.Contains(t, text.String(), "No team members in snapshot")
}
