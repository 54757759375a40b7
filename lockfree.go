package tbucket

import "sync/atomic"

// LockFreeBucket is a [Bucket] that never blocks a goroutine. Each mutating
// operation loads the published state, works on a private deep copy, and
// installs it back via compare-and-swap, retrying on failure. Progress is
// lock-free system-wide: some goroutine always completes its CAS, though
// any individual goroutine can in theory retry an unbounded number of
// times under extreme contention.
//
// Grounded on the CAS-retry shape of the teacher's RateLimiter.refill
// (single-bandwidth, single atomic.Int64 pair): here the published unit is
// the whole multi-bandwidth [BucketState], swapped by reference rather than
// by value, so one CAS commits refill and mutation together.
type LockFreeBucket struct {
	state  atomic.Pointer[BucketState]
	clock  Clock
	hooks  *Hooks
	config *BucketConfiguration
}

// NewLockFreeBucket builds a CAS-based bucket from cfg, using clock for
// timestamps. hooks may be nil.
func NewLockFreeBucket(cfg *BucketConfiguration, clock Clock, hooks *Hooks) *LockFreeBucket {
	b := &LockFreeBucket{clock: clock, hooks: hooks, config: cfg}
	b.state.Store(newBucketState(cfg, clock.NowNanos()))

	return b
}

// GetConfiguration returns the bucket's configuration.
func (b *LockFreeBucket) GetConfiguration() *BucketConfiguration { return b.config }

// casLoop is the shared retry skeleton described in the design: load,
// clone, refill against a fixed time T (sampled once, never re-sampled
// across retries), let apply decide whether to mutate and what to return.
// apply returns the mutated working copy is published only if it reports
// shouldPublish; on CAS failure the working copy is overwritten in place
// from the freshly loaded state and refill is re-applied before apply runs
// again.
//
// OnRefilled fires from here, once, only for the iteration that actually
// wins the CAS: a losing retry's refill work is discarded and replayed
// against the fresh state, so reporting it would double-count tokens that
// were never published.
func casLoop[R any](
	b *LockFreeBucket,
	now int64,
	apply func(working *BucketState, now int64) (result R, shouldPublish bool),
) R {
	published := b.state.Load()
	working := published.Clone()

	for {
		refilled := working.refill(now)

		result, shouldPublish := apply(working, now)
		if !shouldPublish {
			return result
		}

		if b.state.CompareAndSwap(published, working) {
			if refilled > 0 {
				b.hooks.emitRefilled(refilled)
			}

			return result
		}

		published = b.state.Load()
		working.CopyFrom(published)
	}
}

// TryConsume implements [Bucket.TryConsume].
func (b *LockFreeBucket) TryConsume(n uint64) (bool, error) {
	if err := validateConsumeRequest(b.config, n); err != nil {
		return false, err
	}

	now := b.clock.NowNanos()

	success := casLoop(b, now, func(w *BucketState, _ int64) (bool, bool) {
		if w.availableTokens() < n {
			return false, false
		}

		w.consume(n)

		return true, true
	})

	if success {
		b.hooks.emitConsumed(n)
	} else {
		b.hooks.emitRejected(n)
	}

	return success, nil
}

// TryConsumeAndReturnRemaining implements
// [Bucket.TryConsumeAndReturnRemaining].
func (b *LockFreeBucket) TryConsumeAndReturnRemaining(n uint64) (ConsumptionProbe, error) {
	if err := validateConsumeRequest(b.config, n); err != nil {
		return ConsumptionProbe{}, err
	}

	now := b.clock.NowNanos()

	probe := casLoop(b, now, func(w *BucketState, t int64) (ConsumptionProbe, bool) {
		if w.availableTokens() < n {
			return rejectedProbe(w.availableTokens(), w.delayNanosFor(n, t)), false
		}

		w.consume(n)

		return consumedProbe(w.availableTokens()), true
	})

	if probe.Consumed() {
		b.hooks.emitConsumed(n)
	} else {
		b.hooks.emitRejected(n)
	}

	return probe, nil
}

// ConsumeAsMuchAsPossible implements [Bucket.ConsumeAsMuchAsPossible].
func (b *LockFreeBucket) ConsumeAsMuchAsPossible(limit uint64) (uint64, error) {
	now := b.clock.NowNanos()

	k := casLoop(b, now, func(w *BucketState, _ int64) (uint64, bool) {
		available := w.availableTokens()

		k := limit
		if available < k {
			k = available
		}

		if k == 0 {
			return 0, false
		}

		w.consume(k)

		return k, true
	})

	if k > 0 {
		b.hooks.emitConsumed(k)
	}

	return k, nil
}

// ReserveAndCalculateTimeToSleep implements
// [Bucket.ReserveAndCalculateTimeToSleep].
func (b *LockFreeBucket) ReserveAndCalculateTimeToSleep(n uint64, waitLimitNanos int64) (int64, error) {
	if err := validatePositive(n); err != nil {
		return 0, err
	}

	if err := validateWaitLimit(waitLimitNanos); err != nil {
		return 0, err
	}

	now := b.clock.NowNanos()

	delay := casLoop(b, now, func(w *BucketState, t int64) (int64, bool) {
		delay := w.delayNanosFor(n, t)
		if waitLimitNanos > 0 && delay > waitLimitNanos {
			return RejectedReservation, false
		}

		w.consume(n)

		return delay, true
	})

	if delay != RejectedReservation {
		b.hooks.emitReserved(n, delay)
	}

	return delay, nil
}

// AddTokens implements [Bucket.AddTokens].
func (b *LockFreeBucket) AddTokens(m uint64) error {
	if err := validatePositive(m); err != nil {
		return err
	}

	now := b.clock.NowNanos()

	casLoop(b, now, func(w *BucketState, _ int64) (struct{}, bool) {
		w.addTokens(m)

		return struct{}{}, true
	})

	b.hooks.emitAddTokens(m)

	return nil
}

// GetAvailableTokens implements [Bucket.GetAvailableTokens]. It refills a
// local copy only and never publishes it — refill is idempotent and
// time-monotone, so discarding the local refill work is safe, and this
// read path never races a concurrent writer's CAS.
func (b *LockFreeBucket) GetAvailableTokens() uint64 {
	now := b.clock.NowNanos()

	working := b.state.Load().Clone()
	working.refill(now)

	return working.availableTokens()
}

// CreateSnapshot implements [Bucket.CreateSnapshot]: a load followed by a
// deep copy, no CAS.
func (b *LockFreeBucket) CreateSnapshot() *BucketState {
	return b.state.Load().Clone()
}

var _ Bucket = (*LockFreeBucket)(nil)
