// Package cachemanager holds collapsed documents between reads. Entries expire
// after a ttl; a zero ttl falls back to the cache's default expiration.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a string-keyed TTL cache in practice, but the key type is
// left open for tests and other stores.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	// GetWithRefresh is Get, but a hit also restarts the entry's ttl.
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	// DeleteFunc removes every entry whose key matches and reports how many
	// were removed.
	DeleteFunc(ctx context.Context, match func(K) bool) int
	Flush(ctx context.Context) error
}
