package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/sprintlens/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes sprintlens'
analyzers as tools that LLMs can invoke. Tools read the snapshot named by
--snapshot (or snapshot.path from config) unless a call passes its own.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "sprintlens": {
        "command": "sprintlens",
        "args": ["--snapshot", "/path/to/snapshot.json", "mcp"]
      }
    }
  }

Available tools:
  - calculate_progress    Subtask completion for parent issues
  - generate_burndown     Ideal and actual remaining points per day
  - engineer_utilization  Completion rate and workload band per engineer
  - sprint_health         Points, progress, review queue, days left
  - velocity_trend        Completed points per sprint and forecast
  - sprint_report         Everything above in one document
  - check_permission      Role based access decisions`,
		Action: runMCPCmd,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the MCP registry manifest",
				Action: runMCPManifestCmd,
			},
		},
	}
}

func runMCPCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	server := mcpserver.NewServer(version,
		mcpserver.WithSnapshotPath(e.source.Path),
		mcpserver.WithLoader(e.loader),
		mcpserver.WithSettings(e.settings),
		mcpserver.WithLogger(e.log),
		mcpserver.WithClock(e.now),
	)
	return server.Run(c.Context)
}

func runMCPManifestCmd(c *cli.Context) error {
	manifest, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(manifest))
	return err
}
