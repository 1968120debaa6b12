package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// FileCache keeps fetched page text on disk for the CLI.
//
// Each entry is a small JSON document holding its key, the page text and
// the expiry, so cached pages can be read with ordinary tools. A key such
// as "staging:content:<hash>" is filed under staging/content/, one
// directory per scope, so namespaced entries never mix.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// pageEntry is the on-disk form of one cached page. Text holds UTF-8
// payloads; anything else goes to Raw.
type pageEntry struct {
	Key       string    `json:"key"`
	Text      string    `json:"text,omitempty"`
	Raw       []byte    `json:"raw,omitempty"`
	Bytes     int       `json:"bytes"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e pageEntry) payload() []byte {
	if e.Raw != nil {
		return e.Raw
	}
	return []byte(e.Text)
}

func (e pageEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Usage summarizes what a FileCache holds.
type Usage struct {
	Entries int
	Bytes   int64
}

// Get returns the cached page for key. Corrupt and expired entries are
// removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	e, err := readEntry(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case errors.Is(err, errCorrupt):
		_ = os.Remove(path)
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	if e.Key != key {
		return nil, false, nil
	}
	if e.expired(c.now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.payload(), true, nil
}

// Set stores data under key. The entry file is replaced atomically so a
// concurrent Get never sees a partial write.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := c.now()
	e := pageEntry{Key: key, Bytes: len(data), StoredAt: now.UTC()}
	if utf8.Valid(data) {
		e.Text = string(data)
	} else {
		e.Raw = data
	}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl).UTC()
	}
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes key. A missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every entry, keeping the cache directory itself.
func (c *FileCache) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Prune removes expired and unreadable entries and reports how many were
// removed.
func (c *FileCache) Prune(ctx context.Context) (int, error) {
	removed := 0
	err := c.walk(ctx, func(path string, e pageEntry, err error) error {
		if err == nil && !e.expired(c.now()) {
			return nil
		}
		if err != nil && !errors.Is(err, errCorrupt) {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

// Usage counts live entries and their payload size.
func (c *FileCache) Usage(ctx context.Context) (Usage, error) {
	var u Usage
	err := c.walk(ctx, func(_ string, e pageEntry, err error) error {
		if err != nil || e.expired(c.now()) {
			return nil
		}
		u.Entries++
		u.Bytes += int64(e.Bytes)
		return nil
	})
	return u, err
}

// Location implements Locator.
func (c *FileCache) Location() string { return c.dir }

// Close does nothing for the file cache.
func (c *FileCache) Close() error { return nil }

// walk calls fn for every entry file under the cache directory.
func (c *FileCache) walk(ctx context.Context, fn func(path string, e pageEntry, err error) error) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		e, err := readEntry(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fn(path, e, err)
	})
}

var errCorrupt = errors.New("corrupt cache entry")

func readEntry(path string) (pageEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pageEntry{}, err
	}
	var e pageEntry
	if err := json.Unmarshal(data, &e); err != nil || e.Key == "" {
		return pageEntry{}, errCorrupt
	}
	return e, nil
}

// path maps a key to scope directories plus a hash-sharded file name.
func (c *FileCache) path(key string) string {
	parts := strings.Split(key, ":")
	elems := []string{c.dir}
	for _, scope := range parts[:len(parts)-1] {
		elems = append(elems, scopeDir(scope))
	}
	hash := Hash([]byte(key))
	elems = append(elems, hash[:2], hash[2:]+".json")
	return filepath.Join(elems...)
}

// scopeDir makes a key scope safe to use as a directory name.
func scopeDir(scope string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, scope)
	if s == "" {
		return "_"
	}
	return s
}

var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
	_ Locator = (*FileCache)(nil)
)
