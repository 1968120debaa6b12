package cache

import (
	"context"
	"time"
)

// NullCache stands in when page caching is off. Every lookup misses, writes
// are dropped, and the importer fetches each page from the proxy.
type NullCache struct {
	reason string
}

// Disabled returns a NullCache that records why caching is off, such as
// "--no-cache" or an unwritable cache directory.
func Disabled(reason string) *NullCache {
	if reason == "" {
		reason = "caching disabled"
	}
	return &NullCache{reason: reason}
}

// NewNullCache returns a disabled cache with the default reason.
func NewNullCache() Cache { return Disabled("") }

// Reason says why caching is off.
func (c *NullCache) Reason() string { return c.reason }

// Location implements Locator.
func (c *NullCache) Location() string { return "disabled (" + c.reason + ")" }

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

var (
	_ Cache   = (*NullCache)(nil)
	_ Locator = (*NullCache)(nil)
)
