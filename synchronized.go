package tbucket

import "sync"

// SynchronizedBucket is a [Bucket] that serializes every operation behind a
// single mutex: the refill-inspect-mutate atomic section is exactly the
// region between Lock and Unlock. No other synchronization is used.
type SynchronizedBucket struct {
	mu     sync.Mutex
	state  *BucketState
	clock  Clock
	hooks  *Hooks
	config *BucketConfiguration
}

// NewSynchronizedBucket builds a mutex-guarded bucket from cfg, using clock
// for timestamps. hooks may be nil.
func NewSynchronizedBucket(cfg *BucketConfiguration, clock Clock, hooks *Hooks) *SynchronizedBucket {
	return &SynchronizedBucket{
		state:  newBucketState(cfg, clock.NowNanos()),
		clock:  clock,
		hooks:  hooks,
		config: cfg,
	}
}

// GetConfiguration returns the bucket's configuration.
func (b *SynchronizedBucket) GetConfiguration() *BucketConfiguration { return b.config }

// TryConsume implements [Bucket.TryConsume].
func (b *SynchronizedBucket) TryConsume(n uint64) (bool, error) {
	if err := validateConsumeRequest(b.config, n); err != nil {
		return false, err
	}

	now := b.clock.NowNanos()

	b.mu.Lock()
	defer b.mu.Unlock()

	refilled := b.state.refill(now)
	if refilled > 0 {
		b.hooks.emitRefilled(refilled)
	}

	if b.state.availableTokens() < n {
		b.hooks.emitRejected(n)

		return false, nil
	}

	b.state.consume(n)
	b.hooks.emitConsumed(n)

	return true, nil
}

// TryConsumeAndReturnRemaining implements
// [Bucket.TryConsumeAndReturnRemaining].
func (b *SynchronizedBucket) TryConsumeAndReturnRemaining(n uint64) (ConsumptionProbe, error) {
	if err := validateConsumeRequest(b.config, n); err != nil {
		return ConsumptionProbe{}, err
	}

	now := b.clock.NowNanos()

	b.mu.Lock()
	defer b.mu.Unlock()

	refilled := b.state.refill(now)
	if refilled > 0 {
		b.hooks.emitRefilled(refilled)
	}

	if b.state.availableTokens() < n {
		delay := b.state.delayNanosFor(n, now)
		b.hooks.emitRejected(n)

		return rejectedProbe(b.state.availableTokens(), delay), nil
	}

	b.state.consume(n)
	b.hooks.emitConsumed(n)

	return consumedProbe(b.state.availableTokens()), nil
}

// ConsumeAsMuchAsPossible implements [Bucket.ConsumeAsMuchAsPossible].
// limit may be 0 (returns 0, no mutation) and may exceed every bandwidth's
// capacity (the min-with-available-tokens below simply caps it).
func (b *SynchronizedBucket) ConsumeAsMuchAsPossible(limit uint64) (uint64, error) {
	now := b.clock.NowNanos()

	b.mu.Lock()
	defer b.mu.Unlock()

	refilled := b.state.refill(now)
	if refilled > 0 {
		b.hooks.emitRefilled(refilled)
	}

	available := b.state.availableTokens()

	k := limit
	if available < k {
		k = available
	}

	if k == 0 {
		return 0, nil
	}

	b.state.consume(k)
	b.hooks.emitConsumed(k)

	return k, nil
}

// ReserveAndCalculateTimeToSleep implements
// [Bucket.ReserveAndCalculateTimeToSleep].
func (b *SynchronizedBucket) ReserveAndCalculateTimeToSleep(n uint64, waitLimitNanos int64) (int64, error) {
	if err := validatePositive(n); err != nil {
		return 0, err
	}

	if err := validateWaitLimit(waitLimitNanos); err != nil {
		return 0, err
	}

	now := b.clock.NowNanos()

	b.mu.Lock()
	defer b.mu.Unlock()

	refilled := b.state.refill(now)
	if refilled > 0 {
		b.hooks.emitRefilled(refilled)
	}

	delay := b.state.delayNanosFor(n, now)
	if waitLimitNanos > 0 && delay > waitLimitNanos {
		return RejectedReservation, nil
	}

	b.state.consume(n)
	b.hooks.emitReserved(n, delay)

	return delay, nil
}

// AddTokens implements [Bucket.AddTokens].
func (b *SynchronizedBucket) AddTokens(m uint64) error {
	if err := validatePositive(m); err != nil {
		return err
	}

	now := b.clock.NowNanos()

	b.mu.Lock()
	defer b.mu.Unlock()

	refilled := b.state.refill(now)
	if refilled > 0 {
		b.hooks.emitRefilled(refilled)
	}

	b.state.addTokens(m)
	b.hooks.emitAddTokens(m)

	return nil
}

// GetAvailableTokens implements [Bucket.GetAvailableTokens].
func (b *SynchronizedBucket) GetAvailableTokens() uint64 {
	now := b.clock.NowNanos()

	b.mu.Lock()
	defer b.mu.Unlock()

	refilled := b.state.refill(now)
	if refilled > 0 {
		b.hooks.emitRefilled(refilled)
	}

	return b.state.availableTokens()
}

// CreateSnapshot implements [Bucket.CreateSnapshot].
func (b *SynchronizedBucket) CreateSnapshot() *BucketState {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state.Clone()
}

var _ Bucket = (*SynchronizedBucket)(nil)
