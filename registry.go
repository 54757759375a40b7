package tbucket

import (
	"sync"
	"sync/atomic"
)

// BucketFactory builds the [Bucket] for a key the first time
// [BucketRegistry.GetOrCreate] sees it.
type BucketFactory func() Bucket

// EvictionCache is the interface an optional cache backend must implement
// to sit in front of [BucketRegistry]'s own map. cache/ristretto and
// cache/otter each provide one. The registry looks a key up in the cache
// first and mirrors its own inserts and [BucketRegistry.Evict] calls into
// it; a bucket the cache drops on its own is still held in the registry's
// map, so the cache does not bound the registry's memory.
//
// This is [Cache] instantiated at the one value type a bucket registry
// ever needs: Bucket, keyed by the string principal identifier the
// registry itself is keyed by.
type EvictionCache = Cache[Bucket]

// BucketRegistry is a local, in-process keyed manager of named [Bucket]
// instances — one bucket per rate-limited principal (API key, tenant, IP).
// It is not a distributed backend: there is no network call and no shared
// remote store, only an in-process map.
//
// Pattern: copy-on-write map guarded by a mutex for writers, read via an
// atomic pointer so the lock-free reads in GetOrCreate and Len never race a
// concurrent writer. Grounded on the teacher's Registry (registry.go), which uses the
// identical mu + atomic.Pointer[[]T] shape to protect its reporter list.
type BucketRegistry struct {
	mu      sync.Mutex
	buckets atomic.Pointer[map[string]Bucket]
	cache   EvictionCache // optional; nil means no cache
}

// NewBucketRegistry creates an empty registry. cache may be nil. With or
// without a cache, a bucket stays in the registry's map until Evict removes
// it.
func NewBucketRegistry(cache EvictionCache) *BucketRegistry {
	r := &BucketRegistry{cache: cache}
	empty := map[string]Bucket{}
	r.buckets.Store(&empty)

	return r
}

// GetOrCreate returns the bucket for key, building it with factory on first
// use. Concurrent calls for the same unseen key may race factory, but only
// one of the resulting buckets is published; the rest are discarded.
func (r *BucketRegistry) GetOrCreate(key string, factory BucketFactory) Bucket {
	if r.cache != nil {
		if b, ok := r.cache.Get(key); ok {
			return b
		}
	}

	if b, ok := (*r.buckets.Load())[key]; ok {
		return b
	}

	b := factory()

	r.mu.Lock()
	defer r.mu.Unlock()

	old := *r.buckets.Load()
	if existing, ok := old[key]; ok {
		return existing
	}

	updated := make(map[string]Bucket, len(old)+1)
	for k, v := range old {
		updated[k] = v
	}

	updated[key] = b
	r.buckets.Store(&updated)

	if r.cache != nil {
		r.cache.Set(key, b, 0)
	}

	return b
}

// Evict removes key from the registry's own map and, when a cache is
// configured, from the cache. A goroutine already holding the evicted Bucket keeps
// operating on valid state; it is simply no longer reachable by key.
func (r *BucketRegistry) Evict(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := *r.buckets.Load()
	if _, ok := old[key]; !ok {
		return
	}

	updated := make(map[string]Bucket, len(old))
	for k, v := range old {
		if k != key {
			updated[k] = v
		}
	}

	r.buckets.Store(&updated)

	if r.cache != nil {
		r.cache.Delete(key)
	}
}

// Len returns the number of buckets held in the registry's own map. Buckets
// that a configured cache has dropped on its own are still counted.
func (r *BucketRegistry) Len() int { return len(*r.buckets.Load()) }

// ---------------------------------------------------------------------------
// DefaultRegistry — package-level global registry singleton
// ---------------------------------------------------------------------------

var (
	defaultRegistryOnce sync.Once
	defaultRegistryVal  *BucketRegistry
)

// DefaultRegistry returns the package-level global registry, creating it
// (with no eviction cache) on first call.
//
// Pattern: Singleton — lazy initialization via sync.Once ensures exactly
// one global registry exists and is safe for concurrent access.
func DefaultRegistry() *BucketRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistryVal = NewBucketRegistry(nil)
	})

	return defaultRegistryVal
}
