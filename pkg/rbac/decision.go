package rbac

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/panbanda/sprintlens/pkg/models"
)

// Decision is the outcome of a permission check.
type Decision struct {
	Role     models.Role `json:"role" toon:"role"`
	Resource string      `json:"resource" toon:"resource"`
	Action   Action      `json:"action" toon:"action"`
	IssueID  string      `json:"issue_id,omitempty" toon:"issue_id,omitempty"`
	UserID   string      `json:"user_id,omitempty" toon:"user_id,omitempty"`
	Allowed  bool        `json:"allowed" toon:"allowed"`
}

// Check evaluates HasPermission. When issue is non-nil and action is update,
// the issue-level CanEditIssue rule decides instead.
func Check(role models.Role, resource string, action Action, issue *models.Issue, userID string) *Decision {
	d := &Decision{Role: role, Resource: resource, Action: action, UserID: userID}
	if issue != nil && action == ActionUpdate {
		d.IssueID = issue.ID
		d.Allowed = CanEditIssue(role, *issue, userID)
		return d
	}
	d.Allowed = HasPermission(role, resource, action)
	return d
}

func (d *Decision) verdict() string {
	if d.Allowed {
		return "allowed"
	}
	return "denied"
}

func (d *Decision) subject() string {
	if d.IssueID != "" {
		return fmt.Sprintf("issue %s", d.IssueID)
	}
	return d.Resource
}

// RenderText implements output.Renderable for text output.
func (d *Decision) RenderText(w io.Writer, colored bool) error {
	verdict := d.verdict()
	if colored {
		if d.Allowed {
			verdict = color.GreenString(verdict)
		} else {
			verdict = color.RedString(verdict)
		}
	}
	_, err := fmt.Fprintf(w, "%s: %s %s on %s\n", verdict, d.Role, d.Action, d.subject())
	return err
}

// RenderMarkdown implements output.Renderable for markdown output.
func (d *Decision) RenderMarkdown(w io.Writer) error {
	_, err := fmt.Fprintf(w, "**%s**: %s %s on %s\n", d.verdict(), d.Role, d.Action, d.subject())
	return err
}

// RenderData implements output.Renderable for JSON/TOON output.
func (d *Decision) RenderData() any {
	return d
}
