// Package burndown builds per-day remaining/ideal story point series for a
// sprint from issue status history.
package burndown

import (
	"math"
	"time"

	"github.com/panbanda/sprintlens/pkg/models"
)

// DefaultLabelLayout renders days as "Jan 2".
const DefaultLabelLayout = "Jan 2"

type options struct {
	loc         *time.Location
	attribution Attribution
	layout      string
}

// Option configures a burndown computation.
type Option func(*options)

// WithLocation sets the location used to truncate dates to calendar days.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithDoneAttribution selects first or last Done attribution.
// Unknown values keep the default (first).
func WithDoneAttribution(a Attribution) Option {
	return func(o *options) {
		if a.Valid() {
			o.attribution = a
		}
	}
}

// WithLabelLayout sets the time layout used for DataPoint.Day.
func WithLabelLayout(layout string) Option {
	return func(o *options) {
		if layout != "" {
			o.layout = layout
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		loc:         time.Local,
		attribution: AttributeFirst,
		layout:      DefaultLabelLayout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Generate returns one data point per calendar day of the sprint, both ends
// inclusive. issues must already be filtered to the sprint. An empty issue
// list yields an empty series; issues without points yield a series of zeros.
func Generate(sprint models.Sprint, issues []models.Issue, opts ...Option) []DataPoint {
	if len(issues) == 0 {
		return nil
	}
	o := newOptions(opts)
	s := newSeries(sprint, issues, o)
	return s.points
}

// Analyze wraps Generate with sprint metadata and totals.
func Analyze(sprint models.Sprint, issues []models.Issue, opts ...Option) *Analysis {
	o := newOptions(opts)
	start := truncateDay(sprint.StartDate, o.loc)
	end := truncateDay(sprint.EndDate, o.loc)

	a := &Analysis{
		SprintID:     sprint.ID,
		SprintName:   sprint.Name,
		Start:        start,
		End:          end,
		DurationDays: DurationDays(sprint.StartDate, sprint.EndDate, o.loc),
		Issues:       len(issues),
		Attribution:  o.attribution,
		Points:       []DataPoint{},
	}
	if len(issues) == 0 {
		return a
	}

	s := newSeries(sprint, issues, o)
	a.TotalPoints = s.total
	a.BurnedPoints = s.burned
	a.IdealPointsPerDay = s.perDay
	a.Points = s.points
	return a
}

// DurationDays returns the inclusive number of calendar days between start
// and end, always at least 1.
func DurationDays(start, end time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	s := truncateDay(start, loc)
	e := truncateDay(end, loc)
	days := math.Abs(e.Sub(s).Hours() / 24)
	return int(math.Round(days)) + 1
}

type series struct {
	total  int
	burned int
	perDay float64
	points []DataPoint
}

func newSeries(sprint models.Sprint, issues []models.Issue, o options) series {
	start := truncateDay(sprint.StartDate, o.loc)
	duration := DurationDays(sprint.StartDate, sprint.EndDate, o.loc)

	total := 0
	for _, issue := range issues {
		total += issue.Points()
	}

	// A single-day sprint has no slope; its only ideal point sits at total.
	perDay := 0.0
	if duration > 1 {
		perDay = float64(total) / float64(duration-1)
	}

	idx := buildDoneIndex(issues, o.attribution, o.loc)

	s := series{total: total, perDay: perDay, points: make([]DataPoint, 0, duration)}
	remaining := total
	for i := 0; i < duration; i++ {
		date := start.AddDate(0, 0, i)

		completed := idx.pointsOn(date, issues)
		s.burned += completed
		remaining -= completed
		if remaining < 0 {
			remaining = 0
		}

		s.points = append(s.points, DataPoint{
			Day:       date.Format(o.layout),
			Date:      date,
			Remaining: remaining,
			Ideal:     math.Max(0, float64(total)-perDay*float64(i)),
		})
	}
	return s
}

func truncateDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
