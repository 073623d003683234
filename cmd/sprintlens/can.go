package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/rbac"
)

func canCmd() *cli.Command {
	return &cli.Command{
		Name:  "can",
		Usage: "Check whether a role may perform an action",
		Description: `Looks the role up in the permission table. With --issue and an update
action, the issue rules apply: Developers may update only issues assigned to
--user.

Examples:
  sprintlens can --role developer --action update --resource issues
  sprintlens can --role developer --action update --issue ISS-12 --user alice`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "role",
				Usage:    "Admin, Product Owner, Developer, Designer or Viewer",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "action",
				Usage:    "create, read, update or delete",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "resource",
				Value: rbac.ResourceIssues,
				Usage: "Resource the action applies to",
			},
			&cli.StringFlag{
				Name:  "issue",
				Usage: "Issue id from the snapshot",
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "Id of the user acting",
			},
		},
		Action: runCanCmd,
	}
}

func runCanCmd(c *cli.Context) error {
	role, err := rbac.ParseRole(c.String("role"))
	if err != nil {
		return err
	}
	action, err := rbac.ParseAction(strings.ToLower(c.String("action")))
	if err != nil {
		return err
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	var issue *models.Issue
	if id := c.String("issue"); id != "" {
		snap, _, err := e.open()
		if err != nil {
			return err
		}
		found, ok := snap.IssueByID(id)
		if !ok {
			return fmt.Errorf("unknown issue: %s", id)
		}
		issue = found
	}
	return e.emit(c, rbac.Check(role, c.String("resource"), action, issue, c.String("user")))
}
