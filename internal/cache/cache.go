package cache

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
)

// Cache stores rendered analysis results on disk, keyed by a content hash of
// everything that went into them.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// Entry is the on-disk record for one cached result.
type Entry struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	Data      []byte    `json:"data"`
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for TTL checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache rooted at dir. A disabled cache misses on every Get and
// ignores every Set. A ttl of 0 never expires entries.
func New(dir string, ttl time.Duration, enabled bool, opts ...Option) (*Cache, error) {
	c := &Cache{dir: dir, ttl: ttl, enabled: enabled, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if !enabled {
		return c, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return c, nil
}

// Enabled reports whether the cache reads and writes entries.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// Key hashes the given parts into a cache key. Parts are length-prefixed so
// that ("ab", "c") and ("a", "bc") produce different keys.
func Key(parts ...[]byte) string {
	h := blake3.New()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashBytes computes a BLAKE3 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached data for key if present and not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	path := c.keyPath(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Key != key {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.Timestamp) > c.ttl {
		_ = os.Remove(path)
		return nil, false
	}
	return entry.Data, true
}

// Set stores data under key.
func (c *Cache) Set(key string, data []byte) error {
	if !c.enabled {
		return nil
	}
	raw, err := json.Marshal(Entry{Key: key, Timestamp: c.now(), Data: data})
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(key), raw, 0o600)
}

// Invalidate removes a cache entry. Missing entries are not an error.
func (c *Cache) Invalidate(key string) error {
	if !c.enabled {
		return nil
	}
	if err := os.Remove(c.keyPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

func (c *Cache) keyPath(key string) string {
	if len(key) > 64 {
		key = HashBytes([]byte(key))
	}
	return filepath.Join(c.dir, key+".json")
}

// Stats summarizes the cache directory.
type Stats struct {
	Entries   int           `json:"entries" toon:"entries"`
	TotalSize int64         `json:"total_size" toon:"total_size"`
	OldestAge time.Duration `json:"oldest_age" toon:"oldest_age"`
	NewestAge time.Duration `json:"newest_age" toon:"newest_age"`
}

// Stats returns statistics about the cache.
func (c *Cache) Stats() (*Stats, error) {
	if !c.enabled {
		return &Stats{}, nil
	}

	stats := &Stats{}
	var oldest, newest time.Time
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		stats.Entries++
		stats.TotalSize += info.Size()
		mod := info.ModTime()
		if oldest.IsZero() || mod.Before(oldest) {
			oldest = mod
		}
		if newest.IsZero() || mod.After(newest) {
			newest = mod
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := c.now()
	if !oldest.IsZero() {
		stats.OldestAge = now.Sub(oldest)
	}
	if !newest.IsZero() {
		stats.NewestAge = now.Sub(newest)
	}
	return stats, nil
}
