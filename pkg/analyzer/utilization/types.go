package utilization

// Band classifies a utilization rate against configured thresholds.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// String implements fmt.Stringer for toon serialization.
func (b Band) String() string { return string(b) }

// EngineerUtilization is the workload breakdown of one assignee.
type EngineerUtilization struct {
	Name               string  `json:"name" toon:"name"`
	TotalTasks         int     `json:"total_tasks" toon:"total_tasks"`
	CompletedTasks     int     `json:"completed_tasks" toon:"completed_tasks"`
	InProgressTasks    int     `json:"in_progress_tasks" toon:"in_progress_tasks"` // In Progress + In Review
	TodoTasks          int     `json:"todo_tasks" toon:"todo_tasks"`
	UtilizationRate    float64 `json:"utilization_rate" toon:"utilization_rate"` // 0-100
	CurrentSprintTasks int     `json:"current_sprint_tasks" toon:"current_sprint_tasks"`
	Band               Band    `json:"band,omitempty" toon:"band,omitempty"`
}

// Summary aggregates the whole team.
type Summary struct {
	TotalEngineers      int     `json:"total_engineers" toon:"total_engineers"`
	AverageUtilization  float64 `json:"average_utilization" toon:"average_utilization"`
	MedianUtilization   float64 `json:"median_utilization" toon:"median_utilization"`
	StdDevUtilization   float64 `json:"stddev_utilization" toon:"stddev_utilization"`
	TotalActiveTasks    int     `json:"total_active_tasks" toon:"total_active_tasks"`
	TotalCompletedTasks int     `json:"total_completed_tasks" toon:"total_completed_tasks"`
}

// Analysis is the utilization report.
type Analysis struct {
	ActiveSprintID string                `json:"active_sprint_id,omitempty" toon:"active_sprint_id,omitempty"`
	Engineers      []EngineerUtilization `json:"engineers" toon:"engineers"`
	Summary        Summary               `json:"summary" toon:"summary"`
}
