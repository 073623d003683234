package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c, err := New(dir, time.Hour, true)
	require.NoError(t, err)
	assert.True(t, c.Enabled())
	assert.DirExists(t, dir)
}

func TestDisabledCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := New(dir, time.Hour, false)
	require.NoError(t, err)
	assert.NoDirExists(t, dir)

	require.NoError(t, c.Set("k", []byte("v")))
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate("k"))
	assert.NoError(t, c.Clear())
}

func TestKey(t *testing.T) {
	a := Key([]byte("snapshot"), []byte("config"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Key([]byte("snapshot"), []byte("config")))
	assert.NotEqual(t, a, Key([]byte("snapshot"), []byte("config2")))
	assert.NotEqual(t, Key([]byte("ab"), []byte("c")), Key([]byte("a"), []byte("bc")))
}

func TestHashBytes(t *testing.T) {
	assert.Len(t, HashBytes([]byte("x")), 64)
	assert.Equal(t, HashBytes([]byte("x")), HashBytes([]byte("x")))
	assert.NotEqual(t, HashBytes([]byte("x")), HashBytes([]byte("y")))
}

func TestSetGetInvalidate(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour, true)
	require.NoError(t, err)

	key := Key([]byte("snap"))
	_, ok := c.Get(key)
	assert.False(t, ok)

	require.NoError(t, c.Set(key, []byte("report")))
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []byte("report"), got)

	require.NoError(t, c.Invalidate(key))
	_, ok = c.Get(key)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(key), "invalidating a missing entry is fine")
}

func TestTTLExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c, err := New(t.TempDir(), time.Hour, true, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	require.NoError(t, c.Set("k", []byte("v")))
	now = now.Add(59 * time.Minute)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.NoFileExists(t, c.keyPath("k"))
}

func TestZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c, err := New(t.TempDir(), 0, true, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	require.NoError(t, c.Set("k", []byte("v")))
	now = now.AddDate(1, 0, 0)
	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestCorruptEntryMisses(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour, true)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(c.keyPath("k"), []byte("not json"), 0o600))

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestClearAndStats(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := New(dir, time.Hour, true)
	require.NoError(t, err)

	require.NoError(t, c.Set("a", []byte("1")))
	require.NoError(t, c.Set("b", []byte("22")))

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Positive(t, stats.TotalSize)

	require.NoError(t, c.Clear())
	assert.NoDirExists(t, dir)
}
