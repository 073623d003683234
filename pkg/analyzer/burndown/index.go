package burndown

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/panbanda/sprintlens/pkg/models"
)

// doneIndex maps a calendar day key to the positions of the issues whose
// attributed Done transition falls on that day. Each issue appears under
// at most one day.
type doneIndex map[int]*roaring.Bitmap

func buildDoneIndex(issues []models.Issue, attribution Attribution, loc *time.Location) doneIndex {
	idx := make(doneIndex)
	for i, issue := range issues {
		var (
			at time.Time
			ok bool
		)
		if attribution == AttributeLast {
			at, ok = issue.LastDone()
		} else {
			at, ok = issue.FirstDone()
		}
		if !ok {
			continue
		}

		key := dayKey(at.In(loc))
		bm, exists := idx[key]
		if !exists {
			bm = roaring.New()
			idx[key] = bm
		}
		bm.Add(uint32(i))
	}
	return idx
}

// pointsOn sums the story points of the issues completed on day.
func (d doneIndex) pointsOn(day time.Time, issues []models.Issue) int {
	bm, ok := d[dayKey(day)]
	if !ok {
		return 0
	}

	sum := 0
	it := bm.Iterator()
	for it.HasNext() {
		sum += issues[it.Next()].Points()
	}
	return sum
}

// dayKey encodes the calendar date of t in its own location as yyyymmdd.
func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
