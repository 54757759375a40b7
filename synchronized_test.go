package tbucket

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The mutex-guarded variant must give the identical exactly-once-per-token
// guarantee the lock-free variant's S7 test requires, even though it
// achieves it by serializing rather than by CAS retry.
func TestSynchronizedBucketConcurrentContention(t *testing.T) {
	cfg := MustNewBucketConfiguration(
		MustNewBandwidth(10000, 10000, 1, time.Hour, Greedy),
	)
	b := NewSynchronizedBucket(cfg, newFakeClock(0), nil)

	const goroutines = 8

	const perGoroutine = 1000

	var successes atomic.Int64

	var wg sync.WaitGroup

	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()

			for range perGoroutine {
				ok, err := b.TryConsume(1)
				require.NoError(t, err)

				if ok {
					successes.Add(1)
				}
			}
		}()
	}

	wg.Wait()

	require.Equal(t, int64(8000), successes.Load())
	require.Equal(t, uint64(2000), b.GetAvailableTokens())
}

func TestSynchronizedCreateSnapshotIsIndependentCopy(t *testing.T) {
	cfg := MustNewBucketConfiguration(
		MustNewBandwidth(10, 10, 1, time.Second, Greedy),
	)
	b := NewSynchronizedBucket(cfg, newFakeClock(0), nil)

	snap := b.CreateSnapshot()
	require.Equal(t, uint64(10), snap.availableTokens())

	_, err := b.TryConsume(1)
	require.NoError(t, err)

	// snap must be unaffected by the later consume.
	require.Equal(t, uint64(10), snap.availableTokens())
}

var _ Bucket = (*SynchronizedBucket)(nil)
