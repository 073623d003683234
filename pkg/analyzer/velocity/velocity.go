// Package velocity measures delivered story points per sprint and forecasts
// the next sprint from a linear trend.
package velocity

import (
	"sort"
	"time"

	"github.com/panbanda/sprintlens/pkg/analyzer/burndown"
	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/stats"
)

const (
	// DefaultWindow is the number of most recent sprints the trend is fitted on.
	DefaultWindow = 5
	// DefaultCapacity is the hours per day assumed for users without one.
	DefaultCapacity = 8.0
	// MovingWindow is the number of recent sprints in the moving average.
	MovingWindow = 3
)

// SprintVelocity returns the story points of Done issues assigned to sprint.
func SprintVelocity(sprint models.Sprint, issues []models.Issue) int {
	total := 0
	for _, issue := range issues {
		if issue.SprintID == sprint.ID && issue.Status == models.StatusDone {
			total += issue.Points()
		}
	}
	return total
}

// Trend forecasts the next velocity from the last DefaultWindow values.
// Returns 0 when fewer than two velocities are given.
func Trend(velocities []float64) int {
	forecast, _ := fitTrend(velocities, DefaultWindow)
	return forecast
}

// fitTrend fits a least-squares line over the last window velocities with
// x = 1..n and evaluates it at n+1.
func fitTrend(velocities []float64, window int) (int, stats.Fit) {
	if len(velocities) < 2 {
		return 0, stats.Fit{}
	}
	if window >= 2 && len(velocities) > window {
		velocities = velocities[len(velocities)-window:]
	}

	n := len(velocities)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	fit := stats.LinearFit(xs, velocities)
	return stats.RoundHalfUp(fit.Predict(float64(n + 1))), fit
}

// MovingAverage is the rounded mean of the last n velocities. Like Trend it
// returns 0 for fewer than two velocities.
func MovingAverage(velocities []float64, n int) int {
	if len(velocities) < 2 {
		return 0
	}
	if n > 0 && len(velocities) > n {
		velocities = velocities[len(velocities)-n:]
	}
	mean, _ := stats.MeanStdDev(velocities)
	return stats.RoundHalfUp(mean)
}

// Capacity returns the team's available hours over sprintDays. Users
// without a positive capacity count as defaultCapacity hours per day.
func Capacity(users []models.User, sprintDays int, defaultCapacity float64) float64 {
	perDay := 0.0
	for _, u := range users {
		if u.Capacity != nil && *u.Capacity > 0 {
			perDay += *u.Capacity
		} else {
			perDay += defaultCapacity
		}
	}
	return perDay * float64(sprintDays)
}

// Analyzer computes velocity reports.
type Analyzer struct {
	window          int
	defaultCapacity float64
	loc             *time.Location
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWindow sets how many recent sprints the trend uses.
func WithWindow(n int) Option {
	return func(a *Analyzer) {
		if n >= 2 {
			a.window = n
		}
	}
}

// WithDefaultCapacity sets the hours per day for users without a capacity.
func WithDefaultCapacity(hours float64) Option {
	return func(a *Analyzer) {
		if hours > 0 {
			a.defaultCapacity = hours
		}
	}
}

// WithLocation sets the location used to count sprint days.
func WithLocation(loc *time.Location) Option {
	return func(a *Analyzer) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		window:          DefaultWindow,
		defaultCapacity: DefaultCapacity,
		loc:             time.Local,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes per-sprint velocities in start date order and forecasts
// the next sprint from the Completed ones. Planned sprints are skipped and
// the Active sprint is reported but kept out of the fit.
func (a *Analyzer) Analyze(snap *models.Snapshot) *Analysis {
	sprints := make([]models.Sprint, 0, len(snap.Sprints))
	for _, s := range snap.Sprints {
		if s.Status == models.SprintCompleted || s.Status == models.SprintActive {
			sprints = append(sprints, s)
		}
	}
	sort.SliceStable(sprints, func(i, j int) bool {
		return sprints[i].StartDate.Before(sprints[j].StartDate)
	})

	result := &Analysis{
		Window:  a.window,
		Sprints: make([]SprintPoints, 0, len(sprints)),
	}

	var completed []float64
	for _, s := range sprints {
		sp := SprintPoints{
			SprintID:  s.ID,
			Name:      s.Name,
			Status:    s.Status,
			StartDate: s.StartDate,
			Velocity:  SprintVelocity(s, snap.Issues),
			Committed: committed(s, snap.Issues),
		}
		result.Sprints = append(result.Sprints, sp)
		if s.Status == models.SprintCompleted {
			completed = append(completed, float64(sp.Velocity))
		}
	}

	result.CompletedSprints = len(completed)
	result.AverageVelocity, _ = stats.MeanStdDev(completed)
	result.Forecast, result.Fit = fitTrend(completed, a.window)
	result.MovingAverage = MovingAverage(completed, MovingWindow)

	if active := snap.ActiveSprint(); active != nil {
		days := burndown.DurationDays(active.StartDate, active.EndDate, a.loc)
		result.Active = &ActiveCapacity{
			SprintID:      active.ID,
			Days:          days,
			Members:       len(snap.Users),
			CapacityHours: Capacity(snap.Users, days, a.defaultCapacity),
		}
	}
	return result
}

func committed(sprint models.Sprint, issues []models.Issue) int {
	total := 0
	for _, issue := range issues {
		if issue.SprintID == sprint.ID {
			total += issue.Points()
		}
	}
	return total
}
