// Package assign proposes task owners by matching title keywords to member
// skills and rotating through the suitable members.
package assign

import (
	"strings"
	"unicode"

	"github.com/panbanda/sprintlens/pkg/models"
)

// Skills lists every skill in the order groups are reported.
var Skills = []Skill{SkillFrontend, SkillBackend, SkillDesign}

// A title token equal to a keyword, or to the keyword plus "s", selects the
// skill. "ui" selects both Frontend and Design.
var keywords = map[Skill][]string{
	SkillFrontend: {"ui", "frontend"},
	SkillBackend:  {"api", "backend"},
	SkillDesign:   {"design", "ui"},
}

// Classify returns the skills a title calls for, in Skills order.
func Classify(title string) []Skill {
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		tokens[tok] = true
	}

	var out []Skill
	for _, skill := range Skills {
		for _, kw := range keywords[skill] {
			if tokens[kw] || tokens[kw+"s"] {
				out = append(out, skill)
				break
			}
		}
	}
	return out
}

// GroupBySkill buckets tasks by Classify. A task can land in several
// buckets; task order is kept within each.
func GroupBySkill(tasks []models.Issue) map[Skill][]models.Issue {
	groups := make(map[Skill][]models.Issue, len(Skills))
	for _, task := range tasks {
		for _, skill := range Classify(task.Title) {
			groups[skill] = append(groups[skill], task)
		}
	}
	return groups
}

// Suitable returns the members that list skill or hold the Developer role,
// in input order.
func Suitable(skill Skill, members []models.User) []models.User {
	var out []models.User
	for _, m := range members {
		if m.HasSkill(string(skill)) || m.Role == models.RoleDeveloper {
			out = append(out, m)
		}
	}
	return out
}

// Suggest maps each skill to the user id proposed for each of its tasks.
// The i-th task of a skill goes to suitable member i mod len(suitable).
// Skills without a suitable member are left out.
func Suggest(tasks []models.Issue, members []models.User) map[Skill][]string {
	out := make(map[Skill][]string)
	for skill, group := range GroupBySkill(tasks) {
		suitable := Suitable(skill, members)
		if len(suitable) == 0 {
			continue
		}
		ids := make([]string, len(group))
		for i := range group {
			ids[i] = suitable[i%len(suitable)].ID
		}
		out[skill] = ids
	}
	return out
}

// Options selects the candidate tasks.
type Options struct {
	SprintID        string // only tasks in this sprint when set
	IncludeAssigned bool   // also plan tasks that already have an assignee
}

// Candidates returns the open tasks Options selects, in snapshot order.
func Candidates(snap *models.Snapshot, opts Options) []models.Issue {
	var out []models.Issue
	for _, issue := range snap.Issues {
		if issue.Status == models.StatusDone {
			continue
		}
		if opts.SprintID != "" && issue.SprintID != opts.SprintID {
			continue
		}
		if issue.Assignee != "" && !opts.IncludeAssigned {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// Analyze plans the candidate tasks of snap across its users.
func Analyze(snap *models.Snapshot, opts Options) *Analysis {
	tasks := Candidates(snap, opts)
	groups := GroupBySkill(tasks)
	plan := Suggest(tasks, snap.Users)

	a := &Analysis{SprintID: opts.SprintID, Tasks: len(tasks), Groups: []Group{}}
	for _, skill := range Skills {
		group := groups[skill]
		if len(group) == 0 {
			continue
		}
		owners, ok := plan[skill]
		if !ok {
			a.Unstaffed = append(a.Unstaffed, skill)
			continue
		}
		g := Group{Skill: skill}
		for _, m := range Suitable(skill, snap.Users) {
			g.Members = append(g.Members, m.ID)
		}
		for i, task := range group {
			g.Suggestions = append(g.Suggestions, Suggestion{
				IssueID:  task.ID,
				Title:    task.Title,
				Priority: task.Priority,
				UserID:   owners[i],
			})
		}
		a.Groups = append(a.Groups, g)
	}

	for _, task := range tasks {
		if len(Classify(task.Title)) == 0 {
			a.Unmatched = append(a.Unmatched, task.ID)
		}
	}
	return a
}
