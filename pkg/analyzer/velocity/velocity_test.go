package velocity

import (
	"bytes"
	"testing"
	"time"

	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(h float64) *float64 { return &h }

func TestTrend(t *testing.T) {
	tests := []struct {
		name       string
		velocities []float64
		want       int
	}{
		{"empty", nil, 0},
		{"single", []float64{20}, 0},
		{"two points", []float64{10, 20}, 30},
		{"flat", []float64{5, 5}, 5},
		{"linear", []float64{10, 12, 14, 16}, 18},
		{"declining", []float64{30, 25, 20}, 15},
		{"uses last five only", []float64{100, 100, 10, 12, 14, 16, 18}, 20},
		{"noisy", []float64{10, 14, 12}, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trend(tt.velocities))
		})
	}
}

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name       string
		velocities []float64
		want       int
	}{
		{"empty", nil, 0},
		{"single", []float64{20}, 0},
		{"two", []float64{10, 15}, 13},
		{"last three only", []float64{100, 10, 12, 14}, 12},
		{"rounds half up", []float64{1, 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MovingAverage(tt.velocities, MovingWindow))
		})
	}
}

func TestSprintVelocity(t *testing.T) {
	sprint := testutil.NewSprint("s1", models.SprintCompleted, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 14))
	issues := []models.Issue{
		testutil.NewIssue("a", testutil.WithSprint("s1"), testutil.WithPoints(5), testutil.WithStatus(models.StatusDone)),
		testutil.NewIssue("b", testutil.WithSprint("s1"), testutil.WithPoints(3), testutil.WithStatus(models.StatusInReview)),
		testutil.NewIssue("c", testutil.WithSprint("s1"), testutil.WithStatus(models.StatusDone)),
		testutil.NewIssue("d", testutil.WithSprint("s2"), testutil.WithPoints(8), testutil.WithStatus(models.StatusDone)),
	}
	assert.Equal(t, 5, SprintVelocity(sprint, issues))
	assert.Equal(t, 0, SprintVelocity(sprint, nil))
}

func TestCapacity(t *testing.T) {
	users := []models.User{
		{ID: "u1", Capacity: hours(6)},
		{ID: "u2"},
		{ID: "u3", Capacity: hours(0)},
	}
	assert.Equal(t, 220.0, Capacity(users, 10, DefaultCapacity))
	assert.Equal(t, 0.0, Capacity(nil, 10, DefaultCapacity))
	assert.Equal(t, 0.0, Capacity(users, 0, DefaultCapacity))
}

func TestAnalyze(t *testing.T) {
	snap := &models.Snapshot{
		Sprints: []models.Sprint{
			testutil.NewSprint("s3", models.SprintActive, testutil.Day(2024, 1, 29), testutil.Day(2024, 2, 9)),
			testutil.NewSprint("s1", models.SprintCompleted, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 12)),
			testutil.NewSprint("s4", models.SprintPlanned, testutil.Day(2024, 2, 12), testutil.Day(2024, 2, 23)),
			testutil.NewSprint("s2", models.SprintCompleted, testutil.Day(2024, 1, 15), testutil.Day(2024, 1, 26)),
		},
		Issues: []models.Issue{
			testutil.NewIssue("a", testutil.WithSprint("s1"), testutil.WithPoints(10), testutil.WithStatus(models.StatusDone)),
			testutil.NewIssue("b", testutil.WithSprint("s1"), testutil.WithPoints(3)),
			testutil.NewIssue("c", testutil.WithSprint("s2"), testutil.WithPoints(20), testutil.WithStatus(models.StatusDone)),
			testutil.NewIssue("d", testutil.WithSprint("s3"), testutil.WithPoints(4), testutil.WithStatus(models.StatusDone)),
		},
		Users: []models.User{{ID: "u1"}, {ID: "u2", Capacity: hours(4)}},
	}

	a := New(WithLocation(time.UTC)).Analyze(snap)
	require.Len(t, a.Sprints, 3)
	assert.Equal(t, "s1", a.Sprints[0].SprintID)
	assert.Equal(t, 10, a.Sprints[0].Velocity)
	assert.Equal(t, 13, a.Sprints[0].Committed)
	assert.Equal(t, "s2", a.Sprints[1].SprintID)
	assert.Equal(t, "s3", a.Sprints[2].SprintID)

	assert.Equal(t, 2, a.CompletedSprints)
	assert.InDelta(t, 15.0, a.AverageVelocity, 1e-9)
	assert.Equal(t, 30, a.Forecast)
	assert.InDelta(t, 10.0, a.Fit.Slope, 1e-9)
	assert.Equal(t, 15, a.MovingAverage)

	require.NotNil(t, a.Active)
	assert.Equal(t, "s3", a.Active.SprintID)
	assert.Equal(t, 12, a.Active.Days)
	assert.Equal(t, 144.0, a.Active.CapacityHours)
}

func TestAnalyze_Window(t *testing.T) {
	snap := &models.Snapshot{}
	points := []int{40, 10, 12, 14}
	for i, p := range points {
		id := string(rune('a' + i))
		start := testutil.Day(2024, 1, 1).AddDate(0, 0, 14*i)
		snap.Sprints = append(snap.Sprints, testutil.NewSprint(id, models.SprintCompleted, start, start.AddDate(0, 0, 13)))
		snap.Issues = append(snap.Issues, testutil.NewIssue(id, testutil.WithSprint(id), testutil.WithPoints(p), testutil.WithStatus(models.StatusDone)))
	}

	assert.Equal(t, 16, New(WithWindow(3)).Analyze(snap).Forecast)
	assert.Equal(t, 12, New().Analyze(snap).MovingAverage)
	assert.Equal(t, 3, New(WithWindow(3)).Analyze(snap).Window)
	assert.Equal(t, DefaultWindow, New(WithWindow(1)).Analyze(snap).Window)
	assert.Nil(t, New().Analyze(snap).Active)
}

func TestRender(t *testing.T) {
	snap := &models.Snapshot{
		Sprints: []models.Sprint{testutil.NewSprint("s1", models.SprintCompleted, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 12))},
	}
	a := New().Analyze(snap)

	var text bytes.Buffer
	require.NoError(t, a.RenderText(&text, false))
	assert.Contains(t, text.String(), "Velocity (1 completed sprints)")
	assert.Contains(t, text.String(), "Forecast next sprint: 0")
	assert.Contains(t, text.String(), "Moving average (last 3): 0")

	var md bytes.Buffer
	require.NoError(t, a.RenderMarkdown(&md))
	assert.Contains(t, md.String(), "| Sprint s1 | Completed | 0 | 0 |")

	empty := New().Analyze(&models.Snapshot{})
	text.Reset()
	require.NoError(t, empty.RenderText(&text, false))
	assert.Contains(t, text.String(), "No completed or active sprints")
}
