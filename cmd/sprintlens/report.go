package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/sprintlens/internal/cache"
	"github.com/panbanda/sprintlens/internal/progress"
	"github.com/panbanda/sprintlens/internal/report"
	"github.com/panbanda/sprintlens/pkg/analyzer"
	"github.com/panbanda/sprintlens/pkg/config"
	"github.com/panbanda/sprintlens/pkg/models"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Full report: every sprint's health, utilization, velocity and progress",
		Description: `Runs every analysis over the snapshot. Sprints are analyzed in parallel.
Results are cached by snapshot content and configuration; use --no-cache to
recompute.`,
		Action: runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	snap, raw, err := e.open()
	if err != nil {
		return err
	}
	r, err := e.buildReport(c.Context, snap, raw, c.App.ErrWriter)
	if err != nil {
		return err
	}
	return e.emit(c, r)
}

// buildReport returns the cached report for this snapshot and config when
// there is one, refreshed to now. Otherwise it analyzes the snapshot with a
// progress bar on progressW and stores the result.
func (e *env) buildReport(ctx context.Context, snap *models.Snapshot, raw []byte, progressW io.Writer) (*report.Report, error) {
	store, err := cache.New(e.cfg.Cache.Dir, e.cfg.CacheTTL(), e.cfg.Cache.Enabled && !e.noCache)
	if err != nil {
		return nil, err
	}
	key, err := e.cacheKey(raw)
	if err != nil {
		return nil, err
	}
	now := e.now()

	if data, ok := store.Get(key); ok {
		var r report.Report
		if err := json.Unmarshal(data, &r); err == nil {
			e.log.Debug().Str("key", key[:12]).Msg("report cache hit")
			r.Refresh(now)
			return &r, nil
		}
		e.log.Warn().Str("key", key[:12]).Msg("discarding unreadable cache entry")
	}

	bar := progress.New(progressW, "Analyzing sprints", len(snap.Sprints))
	ctx = analyzer.WithTracker(ctx, bar.Tracker())
	r, err := report.Build(ctx, snap, report.Metadata{
		Source:      e.source.Path,
		Revision:    e.source.Revision,
		GeneratedAt: now,
	}, e.settings)
	if err != nil {
		bar.Fail(err)
		return nil, err
	}
	bar.Done()

	if store.Enabled() {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}
		if err := store.Set(key, data); err != nil {
			e.log.Warn().Err(err).Msg("report not cached")
		}
	}
	return r, nil
}

// cacheKey identifies a report by snapshot content, source, the config
// sections that shape the analysis and the resolved zone name and offset.
// A "Local" timezone is the same config text under every machine zone.
func (e *env) cacheKey(raw []byte) (string, error) {
	analysis := *e.cfg
	analysis.Output = config.OutputConfig{}
	analysis.Cache = config.CacheConfig{}
	cfgBytes, err := toml.Marshal(analysis)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	zone, offset := e.now().In(e.settings.Location).Zone()
	loc := fmt.Sprintf("%s|%s|%d", e.settings.Location, zone, offset)
	return cache.Key(raw, cfgBytes, []byte(e.source.String()), []byte(loc)), nil
}
