package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "sprintlens",
		Usage:   "Sprint analytics for issue tracker snapshots",
		Version: version,
		Description: `Sprintlens reads a snapshot of a team's issue tracker (issues, sprints and
users as JSON, YAML, TOML or an obfuscated .obf file) and computes subtask
progress, sprint burndown, engineer utilization, sprint health, velocity
forecasts and role permissions.

Snapshots can be read as committed at any git revision with --rev.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"SPRINTLENS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "snapshot",
				Aliases: []string{"s"},
				Usage:   "Snapshot file (defaults to snapshot.path from config)",
				EnvVars: []string{"SPRINTLENS_SNAPSHOT"},
			},
			&cli.StringFlag{
				Name:  "rev",
				Usage: "Read the snapshot as committed at this git revision",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.StringFlag{
				Name:  "as-of",
				Usage: "Reference date for days-left (YYYY-MM-DD or RFC 3339, default now)",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable caching",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			progressCmd(),
			burndownCmd(),
			utilizationCmd(),
			healthCmd(),
			velocityCmd(),
			teamCmd(),
			assignCmd(),
			dashboardCmd(),
			reportCmd(),
			watchCmd(),
			canCmd(),
			snapshotCmd(),
			configCmd(),
			initCmd(),
			mcpCmd(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
