// Package ristretto adapts the Ristretto cache library to the
// tbucket.Cache interface, for use as a [tbucket.BucketRegistry] eviction
// backend.
package ristretto

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/ratekit/tbucket"
)

// adapter wraps a ristretto.Cache to implement tbucket.Cache[V].
type adapter[V any] struct {
	cache *ristretto.Cache[string, V]
}

// MustNew creates a tbucket.Cache backed by a Ristretto cache, for
// registries keyed by the string principal identifiers (API key, tenant,
// IP) BucketRegistry uses. MaxSize from [tbucket.CacheConfig] configures
// the cache capacity; Ristretto recommends NumCounters = 10 * MaxSize for
// good admission accuracy. It panics if the underlying Ristretto cache
// cannot be built, mirroring every other MustNew constructor in this
// module.
//
//nolint:ireturn,varnamelen // generic type param V is idiomatic in Go
func MustNew[V any](cfg tbucket.CacheConfig) tbucket.Cache[V] {
	cache, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: int64(cfg.MaxSize) * 10,
		MaxCost:     int64(cfg.MaxSize),
		BufferItems: 64,
	})
	if err != nil {
		panic("tbucket/cache/ristretto: failed to build cache: " + err.Error())
	}

	return &adapter[V]{cache: cache}
}

// Get retrieves a cached value by key.
//
//nolint:ireturn // generic type parameter V, not an interface
func (a *adapter[V]) Get(key string) (V, bool) {
	return a.cache.Get(key)
}

// Set stores a value with the given TTL. A TTL of 0 means no expiration.
func (a *adapter[V]) Set(key string, value V, ttl time.Duration) {
	a.cache.SetWithTTL(key, value, 1, ttl)
}

// Delete removes a cached entry by key.
func (a *adapter[V]) Delete(key string) {
	a.cache.Del(key)
}
