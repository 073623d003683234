package velocity

import (
	"time"

	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/stats"
)

// SprintPoints is the delivery record of one sprint.
type SprintPoints struct {
	SprintID  string              `json:"sprint_id" toon:"sprint_id"`
	Name      string              `json:"name" toon:"name"`
	Status    models.SprintStatus `json:"status" toon:"status"`
	StartDate time.Time           `json:"start_date" toon:"start_date"`
	Velocity  int                 `json:"velocity" toon:"velocity"`   // Done points
	Committed int                 `json:"committed" toon:"committed"` // all points in the sprint
}

// ActiveCapacity is the available team time for the active sprint.
type ActiveCapacity struct {
	SprintID      string  `json:"sprint_id" toon:"sprint_id"`
	Days          int     `json:"days" toon:"days"`
	Members       int     `json:"members" toon:"members"`
	CapacityHours float64 `json:"capacity_hours" toon:"capacity_hours"`
}

// Analysis is the velocity report.
type Analysis struct {
	Sprints          []SprintPoints  `json:"sprints" toon:"sprints"`
	CompletedSprints int             `json:"completed_sprints" toon:"completed_sprints"`
	AverageVelocity  float64         `json:"average_velocity" toon:"average_velocity"`
	Window           int             `json:"window" toon:"window"`
	Forecast         int             `json:"forecast" toon:"forecast"`
	Fit              stats.Fit       `json:"fit" toon:"fit"`
	MovingAverage    int             `json:"moving_average" toon:"moving_average"` // last MovingWindow completed sprints
	Active           *ActiveCapacity `json:"active,omitempty" toon:"active,omitempty"`
}
