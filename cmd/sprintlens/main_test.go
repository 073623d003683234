package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/sprintlens/internal/report"
	"github.com/panbanda/sprintlens/pkg/analyzer/assign"
	"github.com/panbanda/sprintlens/pkg/analyzer/burndown"
	"github.com/panbanda/sprintlens/pkg/analyzer/health"
	"github.com/panbanda/sprintlens/pkg/analyzer/personal"
	"github.com/panbanda/sprintlens/pkg/analyzer/subtask"
	"github.com/panbanda/sprintlens/pkg/analyzer/team"
	"github.com/panbanda/sprintlens/pkg/analyzer/utilization"
	"github.com/panbanda/sprintlens/pkg/analyzer/velocity"
	"github.com/panbanda/sprintlens/pkg/config"
	"github.com/panbanda/sprintlens/pkg/rbac"
	"github.com/panbanda/sprintlens/pkg/snapshot"
	"github.com/panbanda/sprintlens/pkg/testutil"
)

type workspace struct {
	dir      string
	config   string
	snapshot string
	cache    string
}

// newWorkspace writes the sample snapshot and a UTC config whose cache lives
// in the temp dir.
func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		dir:      dir,
		snapshot: testutil.WriteSampleSnapshot(t, dir),
		cache:    filepath.Join(dir, "cache"),
	}
	ws.config = testutil.WriteFile(t, dir, "sprintlens.toml", fmt.Sprintf(`[snapshot]
path = %q
timezone = "UTC"

[cache]
enabled = true
dir = %q
ttl = 0
`, ws.snapshot, ws.cache))
	return ws
}

// run executes the CLI and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"sprintlens"}, args...))
	return stdout.String(), stderr.String(), err
}

func (ws workspace) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return run(t, append([]string{"-c", ws.config, "--as-of", "2024-02-05T12:00:00Z"}, args...)...)
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestProgressCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "progress")
	require.NoError(t, err)
	a := decode[subtask.Analysis](t, out)
	require.Len(t, a.Groups, 1)
	assert.Equal(t, "p", a.Groups[0].ParentID)
	assert.Equal(t, 50, a.Groups[0].Progress)

	out, _, err = ws.run(t, "-f", "json", "progress", "p", "nope")
	require.NoError(t, err)
	list := decode[subtask.IssueList](t, out)
	require.Len(t, list.Issues, 1)
	assert.Equal(t, 50, list.Issues[0].Progress)
	assert.Equal(t, []string{"nope"}, list.Missing)

	_, _, err = ws.run(t, "progress", "nope")
	assert.ErrorContains(t, err, "no such issues: nope")
}

func TestBurndownCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "burndown")
	require.NoError(t, err)
	a := decode[burndown.Analysis](t, out)
	assert.Equal(t, "s3", a.SprintID)
	assert.Equal(t, 18, a.TotalPoints)
	assert.Len(t, a.Points, 14)

	out, _, err = ws.run(t, "-f", "json", "burndown", "--sprint", "s1", "--attribution", "LAST")
	require.NoError(t, err)
	a = decode[burndown.Analysis](t, out)
	assert.Equal(t, "s1", a.SprintID)
	assert.Equal(t, burndown.AttributeLast, a.Attribution)

	_, _, err = ws.run(t, "burndown", "--attribution", "middle")
	assert.ErrorContains(t, err, "must be first or last")

	_, _, err = ws.run(t, "burndown", "--sprint", "s9")
	assert.ErrorIs(t, err, snapshot.ErrUnknownSprint)
}

func TestUtilizationCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "utilization")
	require.NoError(t, err)
	a := decode[utilization.Analysis](t, out)
	assert.Equal(t, "s3", a.ActiveSprintID)
	names := make([]string, len(a.Engineers))
	for i, e := range a.Engineers {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, names)

	_, _, err = ws.run(t, "utilization", "--sprint", "s9")
	assert.ErrorIs(t, err, snapshot.ErrUnknownSprint)
}

func TestHealthCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "health")
	require.NoError(t, err)
	a := decode[health.Analysis](t, out)
	assert.Equal(t, "s3", a.SprintID)
	assert.Equal(t, 18, a.TotalPoints)
	assert.Equal(t, 5, a.CompletedPoints)
	assert.Equal(t, 1, a.TasksInReview)
	assert.Equal(t, 6, a.DaysLeft)

	out, _, err = ws.run(t, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "s3")
}

func TestVelocityCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "velocity")
	require.NoError(t, err)
	a := decode[velocity.Analysis](t, out)
	assert.Equal(t, 16, a.Forecast)
	assert.Equal(t, 10, a.MovingAverage)
	assert.Equal(t, 2, a.CompletedSprints)

	out, _, err = ws.run(t, "-f", "json", "velocity", "--window", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, decode[velocity.Analysis](t, out).Window)

	_, _, err = ws.run(t, "velocity", "--window", "1")
	assert.ErrorContains(t, err, "at least 2")
}

func TestTeamCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "team")
	require.NoError(t, err)
	a := decode[team.Analysis](t, out)
	require.Len(t, a.Members, 3)
	assert.Equal(t, team.MemberMetrics{UserID: "alice", Name: "Alice Nowak", Role: "Developer", Tasks: 5, Completed: 4, CompletionRate: 80}, a.Members[0])
	assert.Equal(t, 49, a.AverageCompletionRate)
	assert.Equal(t, 2, a.BacklogSize)

	out, _, err = ws.run(t, "-f", "json", "team", "--sprint", "s1")
	require.NoError(t, err)
	a = decode[team.Analysis](t, out)
	assert.Equal(t, "s1", a.SprintID)
	assert.Equal(t, 67, a.AverageCompletionRate) // alice 100, bob 100, carol 0

	_, _, err = ws.run(t, "team", "--sprint", "s9")
	assert.ErrorIs(t, err, snapshot.ErrUnknownSprint)
}

func TestAssignCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "assign", "--sprint", "s3", "--include-assigned")
	require.NoError(t, err)
	a := decode[assign.Analysis](t, out)
	assert.Equal(t, 4, a.Tasks)
	require.Len(t, a.Groups, 3)
	assert.Equal(t, assign.SkillBackend, a.Groups[1].Skill)
	assert.Equal(t, "p2", a.Groups[1].Suggestions[0].IssueID)
	assert.Equal(t, []string{"p"}, a.Unmatched)

	out, _, err = ws.run(t, "assign")
	require.NoError(t, err)
	assert.Contains(t, out, "Suggested Assignments (0 open tasks)")

	_, _, err = ws.run(t, "assign", "--sprint", "s9")
	assert.ErrorIs(t, err, snapshot.ErrUnknownSprint)
}

func TestDashboardCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "dashboard", "--user", "carol")
	require.NoError(t, err)
	d := decode[personal.Dashboard](t, out)
	assert.Equal(t, "Carol Wrona", d.Name)
	require.Len(t, d.Todo, 2)
	require.Len(t, d.Urgent, 1)
	assert.Equal(t, "g", d.Urgent[0].ID)
	require.NotNil(t, d.Sprint)
	assert.Equal(t, 33, d.Sprint.Progress)
	assert.Equal(t, 1, d.Sprint.Blocked)
	assert.Equal(t, 6, d.Sprint.DaysLeft)

	out, _, err = ws.run(t, "me", "-u", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Dashboard: Bob Lis (bob)")

	_, _, err = ws.run(t, "dashboard", "--user", "zed")
	assert.ErrorIs(t, err, personal.ErrUnknownUser)

	_, _, err = ws.run(t, "dashboard")
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	newEnv := func(loc *time.Location) *env {
		settings := report.DefaultSettings()
		settings.Location = loc
		return &env{
			cfg:      config.DefaultConfig(),
			settings: settings,
			source:   snapshot.Source{Path: "snapshot.json"},
			asOf:     time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		}
	}
	raw := []byte(`{"issues":[],"sprints":[]}`)
	keyOf := func(e *env, raw []byte) string {
		t.Helper()
		k, err := e.cacheKey(raw)
		require.NoError(t, err)
		return k
	}
	key := func(e *env) string { return keyOf(e, raw) }

	base := newEnv(time.UTC)
	want := key(base)

	output := newEnv(time.UTC)
	output.cfg.Output = config.OutputConfig{Format: "json", Color: false, Verbose: true}
	output.cfg.Cache.TTL = 1
	assert.Equal(t, want, key(output), "output and cache settings do not change the analysis")

	// Same config text, different resolved zone.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.NotEqual(t, want, key(newEnv(ny)))
	assert.NotEqual(t, want, key(newEnv(time.FixedZone("UTC", 3600))))

	burn := newEnv(time.UTC)
	burn.cfg.Burndown.Attribution = "last"
	assert.NotEqual(t, want, key(burn))

	rev := newEnv(time.UTC)
	rev.source.Revision = "HEAD~1"
	assert.NotEqual(t, want, key(rev))

	assert.NotEqual(t, want, keyOf(base, []byte("{}")))
}

func TestReportCmdUsesCache(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "-f", "json", "report")
	require.NoError(t, err)
	first := decode[report.Report](t, out)
	assert.Len(t, first.Sprints, 4)
	assert.Equal(t, "s3", first.ActiveSprintID)
	assert.Equal(t, 6, first.Active().DaysLeft)

	entries, err := os.ReadDir(ws.cache)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// A later reference date reuses the cached analysis with fresh days-left.
	out, _, err = run(t, "-c", ws.config, "--as-of", "2024-02-08T12:00:00Z", "-f", "json", "report")
	require.NoError(t, err)
	second := decode[report.Report](t, out)
	assert.Equal(t, 3, second.Active().DaysLeft)
	assert.True(t, second.Metadata.GeneratedAt.Equal(time.Date(2024, 2, 8, 12, 0, 0, 0, time.UTC)))

	entries, err = os.ReadDir(ws.cache)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReportCmdNoCache(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "--no-cache", "-f", "markdown", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "# ")
	assert.NoDirExists(t, ws.cache)
}

func TestReportCmdWritesOutputFile(t *testing.T) {
	ws := newWorkspace(t)
	target := filepath.Join(ws.dir, "report.json")

	out, _, err := ws.run(t, "--no-cache", "-f", "json", "-o", target, "report")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "s3", decode[report.Report](t, string(data)).ActiveSprintID)
}

func TestCanCmd(t *testing.T) {
	ws := newWorkspace(t)

	tests := []struct {
		name    string
		args    []string
		allowed bool
	}{
		{"admin deletes sprints", []string{"--role", "admin", "--action", "delete", "--resource", "sprints"}, true},
		{"viewer cannot update", []string{"--role", "viewer", "--action", "update"}, false},
		{"developer updates own issue", []string{"--role", "developer", "--action", "update", "--issue", "e", "--user", "alice"}, true},
		{"developer cannot update others' issue", []string{"--role", "developer", "--action", "update", "--issue", "f", "--user", "alice"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := ws.run(t, append([]string{"-f", "json", "can"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decode[rbac.Decision](t, out).Allowed)
		})
	}

	_, _, err := ws.run(t, "can", "--role", "intern", "--action", "read")
	assert.Error(t, err)

	_, _, err = ws.run(t, "can", "--role", "admin", "--action", "read", "--issue", "zzz")
	assert.ErrorContains(t, err, "unknown issue: zzz")
}

func TestSnapshotValidateCmd(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := ws.run(t, "snapshot", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot valid")
	assert.Contains(t, out, "10 issues, 4 sprints, 3 users")

	bad := testutil.WriteFile(t, ws.dir, "bad.json", `{"issues": "nope"}`)
	_, _, err = ws.run(t, "-s", bad, "snapshot", "validate")
	assert.ErrorIs(t, err, snapshot.ErrSchema)
}

func TestSnapshotEncodeDecodeCmd(t *testing.T) {
	ws := newWorkspace(t)
	obf := filepath.Join(ws.dir, "snapshot.obf")

	_, _, err := ws.run(t, "snapshot", "encode", ws.snapshot, obf)
	require.NoError(t, err)

	// The obfuscated copy loads like the plain file.
	out, _, err := ws.run(t, "-s", obf, "-f", "json", "velocity")
	require.NoError(t, err)
	assert.Equal(t, 16, decode[velocity.Analysis](t, out).Forecast)

	out, _, err = ws.run(t, "snapshot", "decode", obf)
	require.NoError(t, err)
	assert.Contains(t, out, `"sprints"`)

	_, _, err = ws.run(t, "snapshot", "encode", ws.snapshot, filepath.Join(ws.dir, "x.json"))
	assert.ErrorContains(t, err, ".obf")
}

func TestSnapshotSchemaCmd(t *testing.T) {
	out, _, err := run(t, "snapshot", "schema")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestSnapshotHistoryCmd(t *testing.T) {
	dir := t.TempDir()
	testutil.CommitFile(t, dir, "notes.md", "hi", "unrelated")
	path := testutil.CommitFile(t, dir, "snapshot.json", string(testutil.SampleSnapshotJSON(t)), "add snapshot")

	out, _, err := run(t, "-s", path, "-f", "json", "snapshot", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "add snapshot")
	assert.NotContains(t, out, "unrelated")
}

func TestRevisionFlagReadsHistory(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CommitFile(t, dir, "snapshot.json", string(testutil.SampleSnapshotJSON(t)), "add snapshot")
	testutil.WriteFile(t, dir, "snapshot.json", `{"issues": [], "sprints": []}`)

	out, _, err := run(t, "-s", path, "--rev", "HEAD", "-f", "json", "velocity")
	require.NoError(t, err)
	assert.Equal(t, 16, decode[velocity.Analysis](t, out).Forecast)

	_, _, err = run(t, "-s", path, "--rev", "HEAD", "watch")
	assert.ErrorContains(t, err, "--rev")
}

func TestConfigCmds(t *testing.T) {
	ws := newWorkspace(t)

	out, _, err := run(t, "-c", ws.config, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")

	out, _, err = run(t, "-c", ws.config, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# Configuration from: "+ws.config)
	assert.Contains(t, out, `timezone = "UTC"`)

	bad := testutil.WriteFile(t, ws.dir, "bad.toml", "[velocity]\nwindow = 1\n")
	out, _, err = run(t, "-c", bad, "config", "validate")
	assert.Error(t, err)
	assert.Contains(t, out, "velocity.window")
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sprintlens", "sprintlens.toml")

	out, _, err := run(t, "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	// The generated file loads and validates.
	out, _, err = run(t, "-c", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")

	_, _, err = run(t, "init", "--path", path)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = run(t, "init", "--path", path, "--force")
	assert.NoError(t, err)
}

func TestMCPManifestCmd(t *testing.T) {
	out, _, err := run(t, "mcp", "manifest")
	require.NoError(t, err)
	assert.Contains(t, out, "io.github.panbanda/sprintlens")
}

func TestGlobalFlagErrors(t *testing.T) {
	ws := newWorkspace(t)

	_, _, err := ws.run(t, "-f", "yaml", "velocity")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = run(t, "-c", ws.config, "--as-of", "last tuesday", "health")
	assert.ErrorContains(t, err, "--as-of")

	_, _, err = run(t, "-c", ws.config, "-s", filepath.Join(ws.dir, "missing.json"), "health")
	assert.Error(t, err)
}

func TestParseAsOf(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)

	got, err := parseAsOf("2024-02-05", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 5, 0, 0, 0, 0, loc), got)

	got, err = parseAsOf("2024-02-05T12:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "abc", truncate("abcdef", 3))
}
