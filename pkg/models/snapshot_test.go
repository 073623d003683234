package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotLookups(t *testing.T) {
	snap := &Snapshot{
		Sprints: []Sprint{
			{ID: "s1", Status: SprintCompleted},
			{ID: "s2", Status: SprintActive},
			{ID: "s3", Status: SprintActive},
		},
		Issues: []Issue{
			{ID: "i1", SprintID: "s2"},
			{ID: "i2", SprintID: "s1"},
			{ID: "i3", SprintID: "s2"},
		},
	}

	active := snap.ActiveSprint()
	require.NotNil(t, active)
	assert.Equal(t, "s2", active.ID, "first active sprint wins")

	sp, ok := snap.SprintByID("s3")
	require.True(t, ok)
	assert.Equal(t, "s3", sp.ID)
	_, ok = snap.SprintByID("missing")
	assert.False(t, ok)

	issue, ok := snap.IssueByID("i2")
	require.True(t, ok)
	assert.Equal(t, "s1", issue.SprintID)

	inSprint := snap.IssuesInSprint("s2")
	require.Len(t, inSprint, 2)
	assert.Equal(t, "i1", inSprint[0].ID)
	assert.Equal(t, "i3", inSprint[1].ID)
}

func TestSnapshotNoActiveSprint(t *testing.T) {
	snap := &Snapshot{Sprints: []Sprint{{ID: "s1", Status: SprintPlanned}}}
	assert.Nil(t, snap.ActiveSprint())
}
