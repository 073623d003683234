package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/sprintlens/internal/logger"
	"github.com/panbanda/sprintlens/internal/output"
	"github.com/panbanda/sprintlens/internal/report"
	"github.com/panbanda/sprintlens/pkg/config"
	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/snapshot"
)

// env is everything a command needs after flags and config are resolved.
type env struct {
	cfg       *config.Config
	cfgSource string
	settings  report.Settings
	loader    *snapshot.Loader
	source    snapshot.Source
	log       zerolog.Logger
	asOf      time.Time // zero means now
	noCache   bool
}

// loadEnv loads the config (explicit --config or the standard locations)
// and applies the global flags on top of it.
func loadEnv(c *cli.Context) (*env, error) {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}
	result, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	cfg := result.Config

	log := logger.New(c.App.ErrWriter, cfg.Output.Verbose || c.Bool("verbose"))
	if result.Source != "" {
		log.Debug().Str("config", result.Source).Msg("configuration loaded")
	}

	settings, err := report.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	path := c.String("snapshot")
	if path == "" {
		path = cfg.Snapshot.Path
	}

	e := &env{
		cfg:       cfg,
		cfgSource: result.Source,
		settings:  settings,
		source:    snapshot.Source{Path: path, Revision: c.String("rev")},
		log:       log,
		noCache:   c.Bool("no-cache"),
		loader: snapshot.NewLoader(
			snapshot.WithLocation(settings.Location),
			snapshot.WithCodec(snapshot.NewCodec(cfg.Snapshot.ObfuscationKey)),
			snapshot.WithValidation(cfg.Snapshot.Validate),
			snapshot.WithLogger(log),
		),
	}
	if s := c.String("as-of"); s != "" {
		if e.asOf, err = parseAsOf(s, settings.Location); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// now is the reference instant for days-left.
func (e *env) now() time.Time {
	if !e.asOf.IsZero() {
		return e.asOf
	}
	return time.Now()
}

// open reads the configured snapshot. A nil opener makes revisions go
// through go-git.
func (e *env) open() (*models.Snapshot, []byte, error) {
	return e.loader.Open(nil, e.source)
}

// formatter builds the output formatter. --format wins over output.format
// from the config file.
func (e *env) formatter(c *cli.Context) (*output.Formatter, error) {
	name := e.cfg.Output.Format
	if c.IsSet("format") || name == "" {
		name = c.String("format")
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	colored := e.cfg.Output.Color && !c.Bool("no-color") && !color.NoColor
	return output.NewFormatter(format, c.App.Writer, c.String("output"), colored)
}

// emit writes r through a freshly built formatter.
func (e *env) emit(c *cli.Context, r output.Renderable) error {
	f, err := e.formatter(c)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Output(r)
}

func parseAsOf(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
