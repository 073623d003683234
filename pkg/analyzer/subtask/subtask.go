// Package subtask rolls subtask statuses up into completion percentages.
package subtask

import (
	"sort"

	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/stats"
)

// CalculateProgress returns the completion percentage of the sibling group
// that issue belongs to. Siblings are all issues sharing its ParentID,
// including issue itself. Issues without a parent report 0.
func CalculateProgress(issue models.Issue, all []models.Issue) int {
	if !issue.IsSubtask() {
		return 0
	}

	var siblings, done int
	for _, other := range all {
		if other.ParentID != issue.ParentID {
			continue
		}
		siblings++
		if other.Status == models.StatusDone {
			done++
		}
	}

	return percent(done, siblings)
}

// Rollup computes the progress of every sibling group in a single pass,
// keyed by parent id.
func Rollup(all []models.Issue) map[string]int {
	groups := tally(all)
	out := make(map[string]int, len(groups.byParent))
	for parent, g := range groups.byParent {
		out[parent] = percent(g.done, g.total)
	}
	return out
}

// Analyze summarizes every sibling group in the snapshot, ordered by parent id.
func Analyze(all []models.Issue) *Analysis {
	groups := tally(all)

	titles := make(map[string]string, len(all))
	for _, issue := range all {
		titles[issue.ID] = issue.Title
	}

	a := &Analysis{Groups: make([]Group, 0, len(groups.byParent))}
	for parent, g := range groups.byParent {
		a.Groups = append(a.Groups, Group{
			ParentID:    parent,
			ParentTitle: titles[parent],
			Total:       g.total,
			Done:        g.done,
			Progress:    percent(g.done, g.total),
			Subtasks:    g.members,
		})
	}
	sort.Slice(a.Groups, func(i, j int) bool {
		return a.Groups[i].ParentID < a.Groups[j].ParentID
	})

	a.calculateSummary()
	return a
}

type counts struct {
	total   int
	done    int
	members []string
}

type groupIndex struct {
	byParent map[string]*counts
}

func tally(all []models.Issue) groupIndex {
	idx := groupIndex{byParent: make(map[string]*counts)}
	for _, issue := range all {
		if !issue.IsSubtask() {
			continue
		}
		g, ok := idx.byParent[issue.ParentID]
		if !ok {
			g = &counts{}
			idx.byParent[issue.ParentID] = g
		}
		g.total++
		g.members = append(g.members, issue.ID)
		if issue.Status == models.StatusDone {
			g.done++
		}
	}
	return idx
}

// percent is round(100*done/total) with halves rounded up. The product is
// taken before dividing, so 23 of 40 gives 58.
func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return stats.RoundHalfUp(float64(done) * 100 / float64(total))
}

// ForIssues reports CalculateProgress for each id in order. Ids that match
// no issue are listed in Missing.
func ForIssues(all []models.Issue, ids []string) *IssueList {
	byID := make(map[string]int, len(all))
	for i, issue := range all {
		byID[issue.ID] = i
	}
	l := &IssueList{Issues: make([]IssueProgress, 0, len(ids))}
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			l.Missing = append(l.Missing, id)
			continue
		}
		l.Issues = append(l.Issues, IssueProgress{
			IssueID:  id,
			ParentID: all[i].ParentID,
			Progress: CalculateProgress(all[i], all),
		})
	}
	return l
}
