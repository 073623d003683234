// Package rbac describes which roles may act on which resources. It only
// answers questions; nothing in sprintlens enforces the answers.
package rbac

import (
	"fmt"
	"strings"

	"github.com/panbanda/sprintlens/pkg/models"
)

// Action is an operation on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// String implements fmt.Stringer for toon serialization.
func (a Action) String() string { return string(a) }

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q (valid: create, read, update, delete)", s)
}

// ParseRole matches s case-insensitively against the known roles. Hyphens
// and underscores stand in for spaces, so "product-owner" is accepted.
func ParseRole(s string) (models.Role, error) {
	norm := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s)))
	for role := range rolePermissions {
		if strings.ToLower(string(role)) == norm {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role %q (valid: Admin, Product Owner, Developer, Designer, Viewer)", s)
}

// Resources known to the permission table.
const (
	ResourceAll     = "*"
	ResourceIssues  = "issues"
	ResourceSprints = "sprints"
)

// Permission grants one action on one resource. Resource "*" matches any.
type Permission struct {
	Resource string `json:"resource" toon:"resource"`
	Action   Action `json:"action" toon:"action"`
}

var rolePermissions = map[models.Role][]Permission{
	models.RoleAdmin: {
		{ResourceAll, ActionCreate},
		{ResourceAll, ActionRead},
		{ResourceAll, ActionUpdate},
		{ResourceAll, ActionDelete},
	},
	models.RoleProductOwner: {
		{ResourceIssues, ActionCreate},
		{ResourceIssues, ActionRead},
		{ResourceIssues, ActionUpdate},
		{ResourceSprints, ActionRead},
		{ResourceSprints, ActionUpdate},
	},
	models.RoleDeveloper: {
		{ResourceIssues, ActionRead},
		{ResourceIssues, ActionUpdate},
	},
	models.RoleDesigner: {
		{ResourceIssues, ActionRead},
	},
	models.RoleViewer: {
		{ResourceIssues, ActionRead},
	},
}

// Permissions returns a copy of the permissions granted to role.
// Unknown roles have none.
func Permissions(role models.Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether role may perform action on resource.
func HasPermission(role models.Role, resource string, action Action) bool {
	for _, p := range rolePermissions[role] {
		if (p.Resource == ResourceAll || p.Resource == resource) && p.Action == action {
			return true
		}
	}
	return false
}

// CanEditIssue reports whether a user with role and id userID may edit
// issue. Admins and Product Owners may edit any issue; anyone else only
// the issues assigned to them.
func CanEditIssue(role models.Role, issue models.Issue, userID string) bool {
	switch {
	case role == models.RoleAdmin:
		return true
	case userID != "" && issue.Assignee == userID:
		return true
	case role == models.RoleProductOwner:
		return true
	}
	return false
}
