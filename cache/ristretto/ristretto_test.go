package ristretto

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ratekit/tbucket"
)

// waitForAdmission gives ristretto time to process buffered writes.
func waitForAdmission() {
	//nolint:mnd // small sleep for ristretto's async admission policy
	time.Sleep(10 * time.Millisecond)
}

func newTestConfig() tbucket.CacheConfig {
	return tbucket.CacheConfig{
		MaxSize: 1000,
		TTL:     time.Minute,
	}
}

func newTestBucket(t *testing.T) tbucket.Bucket {
	t.Helper()

	cfg := tbucket.MustNewBucketConfiguration(
		tbucket.MustNewBandwidth(10, 10, 1, time.Second, tbucket.Greedy),
	)

	return tbucket.NewSynchronizedBucket(cfg, tbucket.RealClock{}, nil)
}

func TestNewDoesNotPanic(t *testing.T) {
	cache := MustNew[tbucket.Bucket](newTestConfig())
	require.NotNil(t, cache)
}

func TestSetGetStoresBucket(t *testing.T) {
	cache := MustNew[tbucket.Bucket](newTestConfig())
	b := newTestBucket(t)

	cache.Set("tenant-a", b, time.Minute)
	waitForAdmission()

	got, ok := cache.Get("tenant-a")
	require.True(t, ok)
	require.Same(t, b, got)
}

func TestGetMissingKeyReturnsFalse(t *testing.T) {
	cache := MustNew[tbucket.Bucket](newTestConfig())

	got, ok := cache.Get("missing")
	require.False(t, ok)
	require.Nil(t, got)
}

func TestDeleteRemovesEntry(t *testing.T) {
	cache := MustNew[tbucket.Bucket](newTestConfig())
	b := newTestBucket(t)

	cache.Set("key", b, time.Minute)
	waitForAdmission()

	_, ok := cache.Get("key")
	require.True(t, ok)

	cache.Delete("key")
	waitForAdmission()

	_, ok = cache.Get("key")
	require.False(t, ok)
}

func TestSetOverwritesExistingValue(t *testing.T) {
	cache := MustNew[tbucket.Bucket](newTestConfig())
	first := newTestBucket(t)
	second := newTestBucket(t)

	cache.Set("key", first, time.Minute)
	waitForAdmission()

	cache.Set("key", second, time.Minute)
	waitForAdmission()

	got, ok := cache.Get("key")
	require.True(t, ok)
	require.Same(t, second, got)
}

func TestConcurrentAccess(t *testing.T) {
	cache := MustNew[tbucket.Bucket](newTestConfig())
	b := newTestBucket(t)

	const goroutines = 50

	var wg sync.WaitGroup

	wg.Add(goroutines)

	for i := range goroutines {
		go func() {
			defer wg.Done()

			key := string(rune('a' + i%26))
			cache.Set(key, b, time.Minute)
			cache.Get(key)
		}()
	}

	wg.Wait()
}

func TestInterfaceCompliance(t *testing.T) {
	var _ tbucket.Cache[tbucket.Bucket] = MustNew[tbucket.Bucket](newTestConfig())
	var _ tbucket.EvictionCache = MustNew[tbucket.Bucket](newTestConfig())
}

func BenchmarkSetGet(b *testing.B) {
	cache := MustNew[tbucket.Bucket](newTestConfig())
	bucket := tbucket.NewSynchronizedBucket(
		tbucket.MustNewBucketConfiguration(
			tbucket.MustNewBandwidth(10, 10, 1, time.Second, tbucket.Greedy),
		),
		tbucket.RealClock{},
		nil,
	)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			cache.Set("bench-key", bucket, time.Minute)
			cache.Get("bench-key")
		}
	})
}
