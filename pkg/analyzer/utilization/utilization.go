// Package utilization aggregates per-assignee workload and utilization rates.
package utilization

import (
	"sort"

	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/stats"
)

// Default band thresholds, in percent.
const (
	DefaultHighThreshold = 80.0
	DefaultLowThreshold  = 50.0
)

// Analyzer computes utilization reports.
type Analyzer struct {
	high float64
	low  float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithThresholds sets the band boundaries. Rates at or above high are
// BandHigh, rates below low are BandLow.
func WithThresholds(high, low float64) Option {
	return func(a *Analyzer) {
		if low <= high {
			a.high = high
			a.low = low
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		high: DefaultHighThreshold,
		low:  DefaultLowThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Calculate groups issues by assignee and returns one entry per assignee,
// sorted by UtilizationRate descending. Ties keep first-seen order. Issues
// without an assignee are ignored. CurrentSprintTasks counts issues whose
// SprintID equals activeSprintID and stays 0 when activeSprintID is empty.
func Calculate(issues []models.Issue, activeSprintID string) []EngineerUtilization {
	index := make(map[string]int)
	var out []EngineerUtilization

	for _, issue := range issues {
		if issue.Assignee == "" {
			continue
		}
		i, ok := index[issue.Assignee]
		if !ok {
			i = len(out)
			index[issue.Assignee] = i
			out = append(out, EngineerUtilization{Name: issue.Assignee})
		}
		e := &out[i]

		e.TotalTasks++
		switch issue.Status {
		case models.StatusDone:
			e.CompletedTasks++
		case models.StatusInProgress, models.StatusInReview:
			e.InProgressTasks++
		case models.StatusTodo:
			e.TodoTasks++
		}
		if activeSprintID != "" && issue.SprintID == activeSprintID {
			e.CurrentSprintTasks++
		}
	}

	for i := range out {
		e := &out[i]
		if e.TotalTasks > 0 {
			e.UtilizationRate = float64(e.CompletedTasks+e.InProgressTasks) / float64(e.TotalTasks) * 100
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UtilizationRate > out[j].UtilizationRate
	})
	return out
}

// Analyze runs Calculate, assigns bands and summarizes the team.
func (a *Analyzer) Analyze(issues []models.Issue, activeSprintID string) *Analysis {
	engineers := Calculate(issues, activeSprintID)
	if engineers == nil {
		engineers = []EngineerUtilization{}
	}

	rates := make([]float64, len(engineers))
	summary := Summary{TotalEngineers: len(engineers)}
	for i := range engineers {
		e := &engineers[i]
		e.Band = a.Band(e.UtilizationRate)
		rates[i] = e.UtilizationRate
		summary.TotalActiveTasks += e.InProgressTasks
		summary.TotalCompletedTasks += e.CompletedTasks
	}
	summary.AverageUtilization, summary.StdDevUtilization = stats.MeanStdDev(rates)
	sort.Float64s(rates)
	summary.MedianUtilization = stats.Percentile(rates, 50)

	return &Analysis{
		ActiveSprintID: activeSprintID,
		Engineers:      engineers,
		Summary:        summary,
	}
}

// Band classifies rate.
func (a *Analyzer) Band(rate float64) Band {
	switch {
	case rate >= a.high:
		return BandHigh
	case rate < a.low:
		return BandLow
	default:
		return BandMedium
	}
}
