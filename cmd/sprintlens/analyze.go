package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/sprintlens/pkg/analyzer/assign"
	"github.com/panbanda/sprintlens/pkg/analyzer/burndown"
	"github.com/panbanda/sprintlens/pkg/analyzer/health"
	"github.com/panbanda/sprintlens/pkg/analyzer/personal"
	"github.com/panbanda/sprintlens/pkg/analyzer/subtask"
	"github.com/panbanda/sprintlens/pkg/analyzer/team"
	"github.com/panbanda/sprintlens/pkg/snapshot"
)

func sprintFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "sprint",
		Usage: "Sprint id (defaults to the active sprint)",
	}
}

func progressCmd() *cli.Command {
	return &cli.Command{
		Name:      "progress",
		Aliases:   []string{"p"},
		Usage:     "Subtask completion for parent issues",
		ArgsUsage: "[issue-id...]",
		Description: `Without arguments, lists every issue that has subtasks with the share of
subtasks Done. With issue ids, reports exactly those issues; issues without
subtasks show 0%.`,
		Action: runProgressCmd,
	}
}

func runProgressCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	snap, _, err := e.open()
	if err != nil {
		return err
	}

	if c.NArg() == 0 {
		return e.emit(c, subtask.Analyze(snap.Issues))
	}
	list := subtask.ForIssues(snap.Issues, c.Args().Slice())
	if len(list.Issues) == 0 {
		return fmt.Errorf("no such issues: %s", strings.Join(list.Missing, ", "))
	}
	return e.emit(c, list)
}

func burndownCmd() *cli.Command {
	return &cli.Command{
		Name:    "burndown",
		Aliases: []string{"bd"},
		Usage:   "Ideal and actual remaining points per sprint day",
		Flags: []cli.Flag{
			sprintFlag(),
			&cli.StringFlag{
				Name:  "attribution",
				Usage: "Which Done transition dates an issue: first or last (default from config)",
			},
		},
		Action: runBurndownCmd,
	}
}

func runBurndownCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	settings := e.settings
	if s := c.String("attribution"); s != "" {
		a := burndown.Attribution(strings.ToLower(s))
		if !a.Valid() {
			return fmt.Errorf("--attribution %q must be first or last", s)
		}
		settings.Attribution = a
	}

	snap, _, err := e.open()
	if err != nil {
		return err
	}
	sprint, err := snapshot.SelectSprint(snap, c.String("sprint"))
	if err != nil {
		return err
	}
	return e.emit(c, burndown.Analyze(*sprint, snap.IssuesInSprint(sprint.ID), settings.BurndownOptions()...))
}

func utilizationCmd() *cli.Command {
	return &cli.Command{
		Name:    "utilization",
		Aliases: []string{"util"},
		Usage:   "Per-engineer completion rate and workload bands",
		Flags:   []cli.Flag{sprintFlag()},
		Action:  runUtilizationCmd,
	}
}

func runUtilizationCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	snap, _, err := e.open()
	if err != nil {
		return err
	}

	sprintID := c.String("sprint")
	if sprintID == "" {
		if active := snap.ActiveSprint(); active != nil {
			sprintID = active.ID
		}
	} else if _, ok := snap.SprintByID(sprintID); !ok {
		return fmt.Errorf("%w: %s", snapshot.ErrUnknownSprint, sprintID)
	}
	return e.emit(c, e.settings.Utilization().Analyze(snap.Issues, sprintID))
}

func healthCmd() *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Points, progress, review queue and days left for a sprint",
		Flags:  []cli.Flag{sprintFlag()},
		Action: runHealthCmd,
	}
}

func runHealthCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	snap, _, err := e.open()
	if err != nil {
		return err
	}
	sprint, err := snapshot.SelectSprint(snap, c.String("sprint"))
	if err != nil {
		return err
	}
	return e.emit(c, health.Analyze(*sprint, snap.Issues, e.now(), e.settings.BurndownOptions()...))
}

func velocityCmd() *cli.Command {
	return &cli.Command{
		Name:    "velocity",
		Aliases: []string{"vel"},
		Usage:   "Completed points per sprint, trend and forecast",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "window",
				Usage: "Number of recent completed sprints in the forecast (default from config)",
			},
		},
		Action: runVelocityCmd,
	}
}

func runVelocityCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	settings := e.settings
	if c.IsSet("window") {
		if w := c.Int("window"); w < 2 {
			return fmt.Errorf("--window must be at least 2 (got %d)", w)
		}
		settings.Window = c.Int("window")
	}

	snap, _, err := e.open()
	if err != nil {
		return err
	}
	return e.emit(c, settings.Velocity().Analyze(snap))
}

func assignCmd() *cli.Command {
	return &cli.Command{
		Name:  "assign",
		Usage: "Suggest owners for open tasks from title keywords and member skills",
		Description: `Titles containing ui/frontend, api/backend or design/ui call for the
Frontend, Backend or Design skill. Each skill's tasks are dealt round-robin to
members who list the skill or hold the Developer role. Only unassigned tasks
are planned unless --include-assigned is given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sprint",
				Usage: "Only plan tasks in this sprint",
			},
			&cli.BoolFlag{
				Name:  "include-assigned",
				Usage: "Also plan tasks that already have an assignee",
			},
		},
		Action: runAssignCmd,
	}
}

func runAssignCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	snap, _, err := e.open()
	if err != nil {
		return err
	}
	sprintID := c.String("sprint")
	if sprintID != "" {
		if _, ok := snap.SprintByID(sprintID); !ok {
			return fmt.Errorf("%w: %s", snapshot.ErrUnknownSprint, sprintID)
		}
	}
	return e.emit(c, assign.Analyze(snap, assign.Options{
		SprintID:        sprintID,
		IncludeAssigned: c.Bool("include-assigned"),
	}))
}

func teamCmd() *cli.Command {
	return &cli.Command{
		Name:  "team",
		Usage: "Tasks, completed tasks and completion rate per team member",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sprint",
				Usage: "Only count issues in this sprint (default: all issues)",
			},
		},
		Action: runTeamCmd,
	}
}

func runTeamCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	snap, _, err := e.open()
	if err != nil {
		return err
	}
	issues := snap.Issues
	sprintID := c.String("sprint")
	if sprintID != "" {
		if _, ok := snap.SprintByID(sprintID); !ok {
			return fmt.Errorf("%w: %s", snapshot.ErrUnknownSprint, sprintID)
		}
		issues = snap.IssuesInSprint(sprintID)
	}
	return e.emit(c, team.Analyze(snap.Users, issues, sprintID))
}

func dashboardCmd() *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"me"},
		Usage:   "One user's open work, urgent issues and active sprint standing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "User id (the value issues carry as assignee)",
				Required: true,
				EnvVars:  []string{"SPRINTLENS_USER"},
			},
		},
		Action: runDashboardCmd,
	}
}

func runDashboardCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	snap, _, err := e.open()
	if err != nil {
		return err
	}
	d, err := personal.Analyze(snap, c.String("user"), e.now())
	if err != nil {
		return err
	}
	return e.emit(c, d)
}
