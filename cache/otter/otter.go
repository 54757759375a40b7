// Package otter adapts the Otter cache library to the tbucket.Cache
// interface, for use as a [tbucket.BucketRegistry] eviction backend.
package otter

import (
	"time"

	"github.com/maypok86/otter"

	"github.com/ratekit/tbucket"
)

// adapter wraps an otter.CacheWithVariableTTL to implement
// tbucket.Cache[V].
type adapter[V any] struct {
	cache otter.CacheWithVariableTTL[string, V]
}

// MustNew creates a tbucket.Cache backed by an Otter cache with per-entry
// TTL support. MaxSize from [tbucket.CacheConfig] configures the underlying
// cache capacity. It panics if the underlying Otter cache cannot be built.
//
//nolint:ireturn,varnamelen // generic type param V is idiomatic in Go
func MustNew[V any](cfg tbucket.CacheConfig) tbucket.Cache[V] {
	cache, err := otter.MustBuilder[string, V](cfg.MaxSize).
		WithVariableTTL().
		Build()
	if err != nil {
		panic("tbucket/cache/otter: failed to build cache: " + err.Error())
	}

	return &adapter[V]{cache: cache}
}

// Get retrieves a cached value by key.
//
//nolint:ireturn // generic type parameter V, not an interface
func (a *adapter[V]) Get(key string) (V, bool) {
	return a.cache.Get(key)
}

// Set stores a value with the given TTL.
func (a *adapter[V]) Set(key string, value V, ttl time.Duration) {
	a.cache.Set(key, value, ttl)
}

// Delete removes a cached entry by key.
func (a *adapter[V]) Delete(key string) {
	a.cache.Delete(key)
}
