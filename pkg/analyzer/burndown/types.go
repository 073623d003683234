package burndown

import "time"

// DataPoint is one calendar day of a burndown series.
type DataPoint struct {
	Day       string    `json:"day" toon:"day"`             // "Jan 2"
	Date      time.Time `json:"date" toon:"date"`           // midnight in the analysis location
	Remaining int       `json:"remaining" toon:"remaining"` // never negative
	Ideal     float64   `json:"ideal" toon:"ideal"`         // never negative
}

// Attribution selects which Done transition an issue's completion is
// attributed to when its history holds more than one.
type Attribution string

const (
	// AttributeFirst uses the earliest Done entry in history order.
	AttributeFirst Attribution = "first"
	// AttributeLast uses the latest Done entry, so reworked issues burn
	// down when they are finally redone.
	AttributeLast Attribution = "last"
)

// String implements fmt.Stringer for toon serialization.
func (a Attribution) String() string { return string(a) }

// Valid reports whether a is a known attribution mode.
func (a Attribution) Valid() bool {
	return a == AttributeFirst || a == AttributeLast
}

// Analysis is a burndown series with its sprint context.
type Analysis struct {
	SprintID          string      `json:"sprint_id" toon:"sprint_id"`
	SprintName        string      `json:"sprint_name" toon:"sprint_name"`
	Start             time.Time   `json:"start" toon:"start"`
	End               time.Time   `json:"end" toon:"end"`
	DurationDays      int         `json:"duration_days" toon:"duration_days"`
	Issues            int         `json:"issues" toon:"issues"`
	TotalPoints       int         `json:"total_points" toon:"total_points"`
	BurnedPoints      int         `json:"burned_points" toon:"burned_points"` // completed on a day inside the sprint window
	Attribution       Attribution `json:"attribution" toon:"attribution"`
	IdealPointsPerDay float64     `json:"ideal_points_per_day" toon:"ideal_points_per_day"`
	Points            []DataPoint `json:"points" toon:"points"`
}
