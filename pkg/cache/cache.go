// Package cache memoizes fetched page text for the importer.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything, and remembers why caching is off
//   - [FileCache]: page-text entry files filed by key scope, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//
// Keys come from a [Keyer] so backends never see raw URLs. Only fetched text
// is cached, never workspace state.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry TTL.
type Cache interface {
	// Get returns the cached data and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Locator is implemented by backends that can say where entries live.
type Locator interface {
	Location() string
}

// Pruner is implemented by backends that must sweep expired entries
// themselves.
type Pruner interface {
	Prune(ctx context.Context) (int, error)
}

// Backend returns the cache underneath any instrumentation wrapper.
func Backend(c Cache) Cache {
	for {
		u, ok := c.(interface{ Unwrap() Cache })
		if !ok {
			return c
		}
		c = u.Unwrap()
	}
}
