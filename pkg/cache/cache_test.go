package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/protoboard/protoboard/pkg/observability"
)

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	c := Disabled("--no-cache")
	defer c.Close()

	if err := c.Set(ctx, "content:abc", []byte("page"), time.Hour); err != nil {
		t.Errorf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, "content:abc"); hit || data != nil || err != nil {
		t.Errorf("Get = %q, %v, %v; want a clean miss", data, hit, err)
	}
	if err := c.Delete(ctx, "content:abc"); err != nil {
		t.Errorf("Delete: %v", err)
	}

	if c.Reason() != "--no-cache" {
		t.Errorf("Reason() = %q", c.Reason())
	}
	if got := c.Location(); got != "disabled (--no-cache)" {
		t.Errorf("Location() = %q", got)
	}
	if got := Disabled("").Reason(); got != "caching disabled" {
		t.Errorf("default reason = %q", got)
	}
	if _, ok := NewNullCache().(*NullCache); !ok {
		t.Error("NewNullCache should return a *NullCache")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.ContentKey("https://r.jina.ai/https://example.com/a")
	b := k.ContentKey("https://r.jina.ai/https://example.com/b")
	if a == b {
		t.Error("Different URLs should produce different keys")
	}
	if !strings.HasPrefix(a, "content:") || len(a) != len("content:")+64 {
		t.Errorf("ContentKey unexpected: %s", a)
	}
	if a != k.ContentKey("https://r.jina.ai/https://example.com/a") {
		t.Error("ContentKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	url := "https://example.com"
	if got, want := scoped.ContentKey(url), "staging:"+inner.ContentKey(url); got != want {
		t.Errorf("ScopedKeyer ContentKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ContentKey("x")
	if !strings.HasPrefix(key, "prefix:content:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if c.Location() != dir {
		t.Errorf("Location() = %s, want %s", c.Location(), dir)
	}

	key := NewDefaultKeyer().ContentKey("https://r.jina.ai/https://example.com/bme688")
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("empty cache reported a hit")
	}
	if err := c.Set(ctx, key, []byte("Title: BME688\n\n42 x 30 mm"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "Title: BME688\n\n42 x 30 mm" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheStoresPageText(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "content:text", []byte("Markdown Content:\n# Servo"), 0); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(c.path("content:text"))
	if err != nil {
		t.Fatal(err)
	}
	var e pageEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if e.Key != "content:text" || e.Text != "Markdown Content:\n# Servo" || e.Raw != nil {
		t.Errorf("entry = %+v, want readable text", e)
	}
	if !e.ExpiresAt.IsZero() {
		t.Errorf("zero ttl stored expiry %v", e.ExpiresAt)
	}

	binary := []byte{0xff, 0xfe, 0x00, 0x01}
	if err := c.Set(ctx, "content:bin", binary, time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "content:bin")
	if err != nil || !hit || !bytes.Equal(data, binary) {
		t.Errorf("binary round trip = %v, %v, %v", data, hit, err)
	}
}

func TestFileCacheScopeDirectories(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	plain := NewDefaultKeyer().ContentKey("https://example.com")
	scoped := NewScopedKeyer(nil, "Staging/EU:").ContentKey("https://example.com")
	for _, k := range []string{plain, scoped} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	rel, err := filepath.Rel(dir, c.path(scoped))
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 4 || parts[0] != "staging_eu" || parts[1] != "content" {
		t.Errorf("scoped entry path = %s", rel)
	}
	if _, err := os.Stat(filepath.Join(dir, "content")); err != nil {
		t.Errorf("unscoped entries should live under content/: %v", err)
	}

	for _, k := range []string{plain, scoped} {
		data, hit, _ := c.Get(ctx, k)
		if !hit || string(data) != k {
			t.Errorf("Get(%s) = %q, %v", k, data, hit)
		}
	}
}

func TestFileCacheKeyMismatchIsMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "content:a", []byte("a"), time.Hour); err != nil {
		t.Fatal(err)
	}
	body, _ := json.Marshal(pageEntry{Key: "content:other", Text: "b", Bytes: 1})
	if err := os.WriteFile(c.path("content:a"), body, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "content:a"); hit || err != nil {
		t.Errorf("foreign entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("fresh entry should hit")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry reported as hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry file should be removed, stat err = %v", err)
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	now = now.Add(365 * 24 * time.Hour)
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl entry should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCachePruneAndUsage(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	entries := []struct {
		key  string
		data string
		ttl  time.Duration
	}{
		{"content:short", "gone soon", time.Minute},
		{"content:long", "still here", time.Hour},
		{"staging:content:keep", "kept", 0},
	}
	for _, e := range entries {
		if err := c.Set(ctx, e.key, []byte(e.data), e.ttl); err != nil {
			t.Fatal(err)
		}
	}
	broken := c.path("content:broken")
	if err := os.MkdirAll(filepath.Dir(broken), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	u, err := c.Usage(ctx)
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if u.Entries != 3 || u.Bytes != int64(len("gone soon")+len("still here")+len("kept")) {
		t.Errorf("Usage = %+v", u)
	}

	now = now.Add(10 * time.Minute)
	n, err := c.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 2 {
		t.Errorf("Prune removed %d entries, want 2 (expired and corrupt)", n)
	}
	u, _ = c.Usage(ctx)
	if u.Entries != 2 {
		t.Errorf("%d entries after Prune, want 2", u.Entries)
	}
	if _, hit, _ := c.Get(ctx, "content:long"); !hit {
		t.Error("Prune removed a live entry")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"content:a", "content:b", "staging:content:c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Clear removed the cache directory: %v", err)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestInstrumented(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := Instrumented(fc, "content")

	c.Get(ctx, "k")
	c.Set(ctx, "k", []byte("v"), time.Hour)
	c.Get(ctx, "k")

	if hooks.misses != 1 || hooks.sets != 1 || hooks.hits != 1 {
		t.Errorf("hooks = %d hits, %d misses, %d sets; want 1 each", hooks.hits, hooks.misses, hooks.sets)
	}

	if Backend(c) != Cache(fc) {
		t.Error("Backend should unwrap to the file cache")
	}
	if Backend(fc) != Cache(fc) {
		t.Error("Backend of an unwrapped cache should be itself")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Port 1 is reserved and nothing listens there.
	_, err := NewRedisCache(ctx, RedisOptions{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("NewRedisCache should fail when Redis is unreachable")
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Errorf("error should name the address: %v", err)
	}
}
