package tbucket

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

type (
	// Cache is the interface an eviction backend must implement to back a
	// [BucketRegistry]. Every [BucketRegistry] is keyed by the string
	// principal identifier a caller rate-limits on (API key, tenant, IP),
	// so unlike the teacher's Cache[K,V] — generic over the many
	// differently-keyed Policy[T] caches it backs — this Cache is fixed to
	// a string key and generic only in the cached value V. cache/ristretto
	// and cache/otter each adapt a real third-party cache library to this
	// shape.
	Cache[V any] interface {
		// Get retrieves a cached bucket by key. Returns the value and true
		// if found.
		Get(key string) (V, bool)
		// Set stores a value with the given TTL. A TTL of 0 means no
		// expiration.
		Set(key string, value V, ttl time.Duration)
		// Delete removes a cached entry by key.
		Delete(key string)
	}

	// CacheConfig holds the configuration for one cache instance.
	CacheConfig struct {
		// Options holds the adapter-specific settings decoded from the
		// config file (e.g. "reset_ttl_on_access"). The adapters in
		// cache/ristretto and cache/otter do not read it.
		Options map[string]any
		// TTL is the ttl decoded from the config file. The adapters do not
		// read it: every Set call passes its own TTL.
		TTL time.Duration
		// MaxSize is the maximum number of entries the cache can hold.
		MaxSize int
	}

	cacheConfigFile struct {
		Caches map[string]cacheConfigJSON `json:"caches"`
	}

	cacheConfigJSON struct {
		Options map[string]any `json:"options,omitempty"`
		TTL     string         `json:"ttl"`
		MaxSize int            `json:"max_size"`
	}
)

// LoadCacheConfig reads a JSON configuration file and returns the CacheConfig
// for the named cache entry, for use with cache/ristretto or cache/otter.
func LoadCacheConfig(path, name string) (CacheConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CacheConfig{}, fmt.Errorf("tbucket: read cache config: %w", err)
	}

	var cfg cacheConfigFile

	if err = json.Unmarshal(data, &cfg); err != nil {
		return CacheConfig{}, fmt.Errorf("tbucket: parse cache config: %w", err)
	}

	raw, ok := cfg.Caches[name]
	if !ok {
		return CacheConfig{}, fmt.Errorf(
			"tbucket: cache %q not found in config",
			name,
		)
	}

	cc := CacheConfig{
		Options: raw.Options,
		MaxSize: raw.MaxSize,
	}

	if raw.TTL != "" {
		ttl, ttlErr := time.ParseDuration(raw.TTL)
		if ttlErr != nil {
			return CacheConfig{}, fmt.Errorf(
				"tbucket: cache %q: ttl: %w",
				name,
				ttlErr,
			)
		}

		cc.TTL = ttl
	}

	return cc, nil
}
