package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/panbanda/sprintlens/pkg/analyzer/burndown"
)

// Config holds all configuration options for sprintlens.
type Config struct {
	// Where the snapshot comes from and how its dates are read
	Snapshot SnapshotConfig `koanf:"snapshot" toml:"snapshot"`

	// Burndown series settings
	Burndown BurndownConfig `koanf:"burndown" toml:"burndown"`

	// Utilization band thresholds
	Utilization UtilizationConfig `koanf:"utilization" toml:"utilization"`

	// Velocity forecast settings
	Velocity VelocityConfig `koanf:"velocity" toml:"velocity"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// SnapshotConfig locates and decodes the snapshot file.
type SnapshotConfig struct {
	Path           string `koanf:"path" toml:"path"`
	Timezone       string `koanf:"timezone" toml:"timezone"` // IANA name, "Local" or "UTC"
	Validate       bool   `koanf:"validate" toml:"validate"`
	ObfuscationKey string `koanf:"obfuscation_key" toml:"obfuscation_key"`
}

// BurndownConfig controls burndown generation.
type BurndownConfig struct {
	Attribution string `koanf:"attribution" toml:"attribution"` // first, last
	LabelLayout string `koanf:"label_layout" toml:"label_layout"`
}

// UtilizationConfig defines the utilization bands, in percent.
type UtilizationConfig struct {
	HighThreshold float64 `koanf:"high_threshold" toml:"high_threshold"`
	LowThreshold  float64 `koanf:"low_threshold" toml:"low_threshold"`
}

// VelocityConfig controls the velocity forecast.
type VelocityConfig struct {
	Window          int     `koanf:"window" toml:"window"`
	DefaultCapacity float64 `koanf:"default_capacity" toml:"default_capacity"` // hours per day
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Snapshot: SnapshotConfig{
			Path:           "snapshot.json",
			Timezone:       "Local",
			Validate:       true,
			ObfuscationKey: "sprintlens_obfuscation_key",
		},
		Burndown: BurndownConfig{
			Attribution: string(burndown.AttributeFirst),
			LabelLayout: burndown.DefaultLabelLayout,
		},
		Utilization: UtilizationConfig{
			HighThreshold: 80,
			LowThreshold:  50,
		},
		Velocity: VelocityConfig{
			Window:          5,
			DefaultCapacity: 8,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".sprintlens/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file on top of the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

var configNames = []string{
	"sprintlens.toml",
	"sprintlens.yaml",
	"sprintlens.yml",
	"sprintlens.json",
	".sprintlens.toml",
	".sprintlens.yaml",
	".sprintlens.yml",
	".sprintlens.json",
}

var searchDirs = []string{".", ".sprintlens"}

// Find returns the first config file found in the standard locations
// under root, or "" when there is none.
func Find(root string) string {
	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(root, dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	if path := Find("."); path != "" {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

// LoadResult is a loaded, validated configuration and where it came from.
type LoadResult struct {
	Config *Config
	Source string // empty when defaults were used
}

type loadOptions struct {
	path string
	root string
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

// WithPath loads exactly this file instead of searching.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) { o.path = path }
}

// WithRoot searches the standard locations under root instead of the
// working directory.
func WithRoot(root string) LoadOption {
	return func(o *loadOptions) { o.root = root }
}

// LoadConfig loads and validates the configuration. An explicit path must
// exist; otherwise the standard locations are searched and defaults are
// used when nothing is found.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	o := loadOptions{root: "."}
	for _, opt := range opts {
		opt(&o)
	}

	source := o.path
	if source == "" {
		source = Find(o.root)
	}

	cfg := DefaultConfig()
	if source != "" {
		var err error
		if cfg, err = Load(source); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &LoadResult{Config: cfg, Source: source}, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string

	if !burndown.Attribution(c.Burndown.Attribution).Valid() {
		problems = append(problems, fmt.Sprintf("burndown.attribution %q must be first or last", c.Burndown.Attribution))
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("snapshot.timezone: %v", err))
	}

	u := c.Utilization
	for _, t := range []struct {
		name  string
		value float64
	}{{"high_threshold", u.HighThreshold}, {"low_threshold", u.LowThreshold}} {
		if t.value < 0 || t.value > 100 {
			problems = append(problems, fmt.Sprintf("utilization.%s %.1f must be within 0..100", t.name, t.value))
		}
	}
	if u.LowThreshold > u.HighThreshold {
		problems = append(problems, "utilization.low_threshold must not exceed high_threshold")
	}

	if c.Velocity.Window < 2 {
		problems = append(problems, fmt.Sprintf("velocity.window %d must be at least 2", c.Velocity.Window))
	}
	if c.Velocity.DefaultCapacity <= 0 {
		problems = append(problems, "velocity.default_capacity must be positive")
	}
	if c.Cache.TTL < 0 {
		problems = append(problems, "cache.ttl must not be negative")
	}
	switch c.Output.Format {
	case "text", "json", "markdown", "toon":
	default:
		problems = append(problems, fmt.Sprintf("output.format %q must be text, json, markdown or toon", c.Output.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}

// Location resolves snapshot.timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Snapshot.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Snapshot.Timezone)
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Hour
}
