package report

import (
	"runtime"
	"time"

	"github.com/panbanda/sprintlens/pkg/analyzer/burndown"
	"github.com/panbanda/sprintlens/pkg/analyzer/utilization"
	"github.com/panbanda/sprintlens/pkg/analyzer/velocity"
	"github.com/panbanda/sprintlens/pkg/config"
)

// Settings carries the analyzer tuning shared by the CLI and the MCP server.
type Settings struct {
	Location        *time.Location
	Attribution     burndown.Attribution
	LabelLayout     string
	HighThreshold   float64
	LowThreshold    float64
	Window          int
	DefaultCapacity float64
	Workers         int
}

// DefaultSettings mirrors config.DefaultConfig.
func DefaultSettings() Settings {
	s, _ := SettingsFromConfig(config.DefaultConfig())
	return s
}

// SettingsFromConfig resolves cfg into analyzer settings.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Location:        loc,
		Attribution:     burndown.Attribution(cfg.Burndown.Attribution),
		LabelLayout:     cfg.Burndown.LabelLayout,
		HighThreshold:   cfg.Utilization.HighThreshold,
		LowThreshold:    cfg.Utilization.LowThreshold,
		Window:          cfg.Velocity.Window,
		DefaultCapacity: cfg.Velocity.DefaultCapacity,
		Workers:         runtime.NumCPU(),
	}, nil
}

// BurndownOptions returns the burndown options for these settings.
func (s Settings) BurndownOptions() []burndown.Option {
	return []burndown.Option{
		burndown.WithLocation(s.Location),
		burndown.WithDoneAttribution(s.Attribution),
		burndown.WithLabelLayout(s.LabelLayout),
	}
}

// Utilization returns a configured utilization analyzer.
func (s Settings) Utilization() *utilization.Analyzer {
	return utilization.New(utilization.WithThresholds(s.HighThreshold, s.LowThreshold))
}

// Velocity returns a configured velocity analyzer.
func (s Settings) Velocity() *velocity.Analyzer {
	return velocity.New(
		velocity.WithWindow(s.Window),
		velocity.WithDefaultCapacity(s.DefaultCapacity),
		velocity.WithLocation(s.Location),
	)
}
