package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/panbanda/sprintlens/internal/vcs"
	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/panbanda/sprintlens/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSnapshot = `{
  "issues": [
    {
      "id": "ISS-1", "title": "Login page", "priority": "P1", "status": "Done",
      "assignee": "alice", "sprintId": "s1", "storyPoints": 5,
      "statusHistory": [
        {"status": "In Progress", "date": "2024-01-01T10:00:00Z"},
        {"status": "Done", "date": "2024-01-02T15:00:00Z"}
      ],
      "createdAt": "2023-12-28T09:00:00Z", "updatedAt": "2024-01-02T15:00:00Z"
    },
    {
      "id": "ISS-2", "title": "Form validation", "priority": "P2", "status": "Todo",
      "parentId": "ISS-1", "sprintId": "s1", "storyPoints": null,
      "createdAt": "2023-12-28", "updatedAt": "2023-12-28"
    }
  ],
  "sprints": [
    {"id": "s1", "name": "Sprint 1", "status": "Active", "startDate": "2024-01-01", "endDate": "2024-01-14"}
  ],
  "users": [
    {"id": "u1", "name": "alice", "role": "Developer", "capacity": 6}
  ]
}`

const yamlSnapshot = `
issues:
  - id: ISS-1
    title: Login page
    priority: P1
    status: Done
    sprintId: s1
    storyPoints: 3
    statusHistory:
      - status: Done
        date: 2024-01-02T15:00:00Z
sprints:
  - id: s1
    name: Sprint 1
    status: Active
    startDate: 2024-01-01
    endDate: "2024-01-14"
`

const tomlSnapshot = `
[[sprints]]
id = "s1"
name = "Sprint 1"
status = "Active"
startDate = 2024-01-01
endDate = 2024-01-14T18:00:00

[[issues]]
id = "ISS-1"
title = "Login page"
priority = "P1"
status = "Done"
sprintId = "s1"
storyPoints = 8
createdAt = 2023-12-28T09:00:00Z

  [[issues.statusHistory]]
  status = "Done"
  date = 2024-01-02
`

func newTestLoader() *Loader {
	return NewLoader(WithLocation(time.UTC))
}

func TestLoad_JSON(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "snapshot.json", jsonSnapshot)

	snap, err := newTestLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, snap.Issues, 2)
	require.Len(t, snap.Sprints, 1)
	require.Len(t, snap.Users, 1)

	first := snap.Issues[0]
	assert.Equal(t, models.PriorityP1, first.Priority)
	assert.Equal(t, models.StatusDone, first.Status)
	assert.Equal(t, 5, first.Points())
	done, ok := first.FirstDone()
	require.True(t, ok)
	assert.True(t, done.Equal(time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)))

	second := snap.Issues[1]
	assert.True(t, second.IsSubtask())
	assert.Nil(t, second.StoryPoints)
	assert.True(t, second.CreatedAt.Equal(testutil.Day(2023, 12, 28)))

	assert.True(t, snap.Sprints[0].StartDate.Equal(testutil.Day(2024, 1, 1)))
	require.NotNil(t, snap.Users[0].Capacity)
	assert.Equal(t, 6.0, *snap.Users[0].Capacity)
}

func TestLoad_YAML(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "snapshot.yml", yamlSnapshot)

	snap, err := newTestLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, snap.Issues, 1)
	assert.Equal(t, 3, snap.Issues[0].Points())
	assert.True(t, snap.Sprints[0].StartDate.Equal(testutil.Day(2024, 1, 1)))
	assert.True(t, snap.Sprints[0].EndDate.Equal(testutil.Day(2024, 1, 14)))
}

func TestLoad_TOML(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "snapshot.toml", tomlSnapshot)

	snap, err := newTestLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, snap.Issues, 1)
	assert.Equal(t, 8, snap.Issues[0].Points())
	assert.True(t, snap.Sprints[0].StartDate.Equal(testutil.Day(2024, 1, 1)))
	assert.True(t, snap.Sprints[0].EndDate.Equal(time.Date(2024, 1, 14, 18, 0, 0, 0, time.UTC)))

	done, ok := snap.Issues[0].FirstDone()
	require.True(t, ok)
	assert.True(t, done.Equal(testutil.Day(2024, 1, 2)))
}

func TestLoad_LocalDatesUseLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	path := testutil.WriteFile(t, t.TempDir(), "snapshot.json", jsonSnapshot)

	snap, err := NewLoader(WithLocation(loc)).Load(path)
	require.NoError(t, err)
	assert.True(t, snap.Sprints[0].StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, loc)))
	// Explicit offsets are kept as written.
	assert.True(t, snap.Issues[0].UpdatedAt.Equal(time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)))
}

func TestLoad_YAMLDateOnlyUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	path := testutil.WriteFile(t, t.TempDir(), "snapshot.yaml", yamlSnapshot)

	snap, err := NewLoader(WithLocation(loc)).Load(path)
	require.NoError(t, err)
	assert.True(t, snap.Sprints[0].StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, loc)))
	done, _ := snap.Issues[0].FirstDone()
	assert.True(t, done.Equal(time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)))
}

func TestLoad_Obfuscated(t *testing.T) {
	codec := NewCodec("k3y")
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.obf")
	require.NoError(t, os.WriteFile(path, codec.Encode([]byte(jsonSnapshot)), 0o644))

	snap, err := NewLoader(WithLocation(time.UTC), WithCodec(codec)).Load(path)
	require.NoError(t, err)
	assert.Len(t, snap.Issues, 2)

	_, err = NewLoader(WithCodec(NewCodec("wrong"))).Load(path)
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := newTestLoader().Load(testutil.WriteFile(t, dir, "snapshot.csv", "id,title"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = newTestLoader().Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = newTestLoader().Load(testutil.WriteFile(t, dir, "broken.json", "{"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSchema)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing sprints", `{"issues": []}`},
		{"bad priority", `{"issues": [{"id": "1", "title": "x", "priority": "P9", "status": "Todo"}], "sprints": []}`},
		{"bad status", `{"issues": [{"id": "1", "title": "x", "priority": "P1", "status": "Blocked"}], "sprints": []}`},
		{"zero points", `{"issues": [{"id": "1", "title": "x", "priority": "P1", "status": "Todo", "storyPoints": 0}], "sprints": []}`},
		{"sprint without dates", `{"issues": [], "sprints": [{"id": "s", "name": "S", "status": "Active"}]}`},
		{"bad role", `{"issues": [], "sprints": [], "users": [{"id": "u", "name": "U", "role": "Boss"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLoader().LoadBytes([]byte(tt.doc), FormatJSON)
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestLoad_ValidationDisabled(t *testing.T) {
	doc := `{
	  "issues": [
	    {"id": "1", "title": "x", "priority": "P9", "status": "Todo"},
	    {"id": "2", "title": "y", "priority": "P1", "status": "Blocked"},
	    {"id": "3", "title": "z", "priority": "P2", "status": "Done"}
	  ],
	  "sprints": [{"id": "s1", "name": "S1", "status": "Frozen", "startDate": "2024-01-01T00:00:00Z", "endDate": "2024-01-02T00:00:00Z"}]
	}`
	var logs bytes.Buffer
	snap, err := NewLoader(WithValidation(false), WithLogger(zerolog.New(&logs))).LoadBytes([]byte(doc), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, models.Priority("P9"), snap.Issues[0].Priority)

	out := logs.String()
	assert.Contains(t, out, `"issue":"1","priority":"P9","message":"unknown priority"`)
	assert.Contains(t, out, `"issue":"2","status":"Blocked","message":"unknown status"`)
	assert.Contains(t, out, `"sprint":"s1","status":"Frozen","message":"unknown sprint status"`)
	assert.NotContains(t, out, `"issue":"3"`)
}

func TestLoad_ValidatedSnapshotLogsNoWarnings(t *testing.T) {
	var logs bytes.Buffer
	_, err := NewLoader(WithLogger(zerolog.New(&logs))).LoadBytes([]byte(jsonSnapshot), FormatJSON)
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "unknown")
}

func TestLoadAtRevision(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)

	path := filepath.Join(root, "snapshot.json")
	commit := func(content, msg string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := w.Add("snapshot.json")
		require.NoError(t, err)
		_, err = w.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
		})
		require.NoError(t, err)
	}
	commit(`{"issues": [], "sprints": []}`, "empty board")
	commit(jsonSnapshot, "sprint 1")

	r, err := vcs.NewGitOpener().PlainOpenWithDetect(root)
	require.NoError(t, err)

	old, err := newTestLoader().LoadAtRevision(r, "HEAD~1", path)
	require.NoError(t, err)
	assert.Empty(t, old.Issues)

	head, err := newTestLoader().LoadAtRevision(r, "HEAD", path)
	require.NoError(t, err)
	assert.Len(t, head.Issues, 2)

	src := Source{Path: path, Revision: "HEAD~1"}
	assert.Equal(t, path+"@HEAD~1", src.String())
	snap, raw, err := newTestLoader().Open(nil, src)
	require.NoError(t, err)
	assert.Empty(t, snap.Issues)
	assert.JSONEq(t, `{"issues": [], "sprints": []}`, string(raw))

	snap, _, err = newTestLoader().Open(vcs.NewGitOpener(), Source{Path: path})
	require.NoError(t, err)
	assert.Len(t, snap.Issues, 2)

	_, _, err = newTestLoader().Open(nil, Source{Path: path, Revision: "no-such-rev"})
	assert.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("")
	plain := []byte(`{"issues":[],"sprints":[]}`)

	encoded := codec.Encode(plain)
	assert.NotContains(t, string(encoded), "issues")

	decoded, err := codec.Decode(append(encoded, '\n'))
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)

	_, err = codec.Decode([]byte("   "))
	assert.Error(t, err)
	_, err = codec.Decode([]byte("not base64!"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":     FormatJSON,
		"a.YAML":     FormatYAML,
		"a.yml":      FormatYAML,
		"dir/a.toml": FormatTOML,
		"a.obf":      FormatObfuscated,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("a.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSelectSprint(t *testing.T) {
	snap := &models.Snapshot{Sprints: []models.Sprint{
		testutil.NewSprint("s1", models.SprintCompleted, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 14)),
		testutil.NewSprint("s2", models.SprintActive, testutil.Day(2024, 1, 15), testutil.Day(2024, 1, 28)),
	}}

	s, err := SelectSprint(snap, "")
	require.NoError(t, err)
	assert.Equal(t, "s2", s.ID)

	s, err = SelectSprint(snap, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)

	_, err = SelectSprint(snap, "s9")
	assert.ErrorIs(t, err, ErrUnknownSprint)

	_, err = SelectSprint(&models.Snapshot{}, "")
	assert.ErrorIs(t, err, ErrNoActiveSprint)
}
