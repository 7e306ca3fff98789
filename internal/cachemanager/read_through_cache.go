package cachemanager

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the value for a cache miss.
type LoadFunc[I any, V any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache fills cache from a LoadFunc. Hits extend the entry's ttl,
// so a value that keeps being read stays cached. Concurrent misses on the
// same key share one load. Failed loads are returned to every waiter and
// never stored.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache  CacheManager[K, V]
	load   LoadFunc[I, V]
	bypass bool

	group singleflight.Group
}

// NewReadThroughCache wraps cache. With bypass set every Get calls load and
// the cache is never touched.
func NewReadThroughCache[K comparable, V any, I any](cache CacheManager[K, V], load LoadFunc[I, V], bypass bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:  cache,
		load:   load,
		bypass: bypass,
	}
}

// Get returns the cached value for key or loads it from input. A caller
// whose ctx ends while a shared load is running gets ctx.Err(); the load
// itself keeps going for the other waiters.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.bypass {
		return r.load(ctx, input)
	}
	if value, ok := r.cache.GetWithRefresh(ctx, key, ttl); ok {
		return value, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(fmt.Sprint(key), func() (any, error) {
		value, err := r.load(loadCtx, input)
		if err != nil {
			return nil, err
		}
		r.cache.Set(loadCtx, key, value, ttl)
		return value, nil
	})

	var zero V
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
