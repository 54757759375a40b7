package tbucket

import (
	"math"
	"math/bits"
)

// bandwidthRuntime is the mutable per-bandwidth runtime state: current
// token count (may go negative after a reservation) and the timestamp of
// the last refill boundary applied to this bandwidth.
type bandwidthRuntime struct {
	currentTokens   int64
	lastRefillNanos int64
}

// BucketState is the mutable vector of per-bandwidth runtime state for one
// bucket. It holds a reference to the immutable [BucketConfiguration] it
// was built from — the configuration is never copied, only the runtime
// vector is — and is itself a plain data container cheap to deep-copy
// (O(number of bandwidths)), as required by the lock-free bucket's
// copy-and-publish protocol.
type BucketState struct {
	config  *BucketConfiguration
	runtime []bandwidthRuntime
}

// newBucketState builds the initial state for a fresh bucket: every
// bandwidth starts at its configured initialTokens, with lastRefillNanos
// set to the bucket's construction timestamp.
func newBucketState(cfg *BucketConfiguration, constructionNanos int64) *BucketState {
	runtime := make([]bandwidthRuntime, len(cfg.bandwidths))
	for i, bw := range cfg.bandwidths {
		runtime[i] = bandwidthRuntime{
			currentTokens:   bw.initialTokens,
			lastRefillNanos: constructionNanos,
		}
	}

	return &BucketState{config: cfg, runtime: runtime}
}

// Clone returns a deep copy of the state: a new runtime vector with the
// same values, sharing the same (immutable) configuration pointer.
func (s *BucketState) Clone() *BucketState {
	runtime := make([]bandwidthRuntime, len(s.runtime))
	copy(runtime, s.runtime)

	return &BucketState{config: s.config, runtime: runtime}
}

// CopyFrom replaces the receiver's runtime values with other's, without
// reallocating the runtime vector. Both states must share the same
// configuration (same bandwidth count and order); this is always true
// within one bucket's lifetime since every BucketState it produces derives
// from the same configuration.
func (s *BucketState) CopyFrom(other *BucketState) {
	copy(s.runtime, other.runtime)
}

// Configuration returns the configuration this state was built from.
func (s *BucketState) Configuration() *BucketConfiguration { return s.config }

// refill brings every bandwidth up to date as of now, per the Greedy or
// Intervally algebra. Refill never decreases lastRefillNanos and never
// decreases currentTokens; a now at or before a bandwidth's lastRefillNanos
// is a silent no-op for that bandwidth (the Time-Source-went-backward
// case). It returns the total number of tokens actually credited across
// every bandwidth, for callers that report an OnRefilled hook.
func (s *BucketState) refill(now int64) uint64 {
	var credited uint64

	for i := range s.runtime {
		rt := &s.runtime[i]
		bw := &s.config.bandwidths[i]

		elapsed := now - rt.lastRefillNanos
		if elapsed <= 0 {
			continue
		}

		before := rt.currentTokens

		if bw.mode == Intervally {
			refillIntervally(rt, bw, elapsed)
		} else {
			refillGreedy(rt, bw, now, elapsed)
		}

		if rt.currentTokens > before {
			credited += uint64(rt.currentTokens - before)
		}
	}

	return credited
}

// refillGreedy credits floor(elapsed*refillTokens/refillPeriod) tokens and
// advances lastRefillNanos by exactly the time that quotient accounts for,
// preserving the fractional remainder for the next refill.
func refillGreedy(rt *bandwidthRuntime, bw *Bandwidth, now, elapsed int64) {
	newTokens, _, overflow := mulDivFloor(uint64(elapsed), uint64(bw.refillTokens), uint64(bw.refillPeriod))
	if overflow {
		// elapsed*refillTokens/refillPeriod doesn't fit in 64 bits —
		// elapsed is astronomically large. Resync fully rather than
		// signal an error, per the overflow-clamps-to-capacity rule.
		rt.currentTokens = bw.capacity
		rt.lastRefillNanos = now

		return
	}

	if newTokens == 0 {
		return
	}

	consumedNanos, _, overflow := mulDivFloor(newTokens, uint64(bw.refillPeriod), uint64(bw.refillTokens))
	if overflow {
		consumedNanos = uint64(elapsed)
	}

	// room is the credit that brings this bandwidth to capacity; currentTokens
	// never exceeds capacity, so the unsigned difference is exact.
	room := uint64(bw.capacity) - uint64(rt.currentTokens)
	if newTokens >= room {
		rt.currentTokens = bw.capacity
	} else {
		rt.currentTokens += int64(newTokens)
	}

	rt.lastRefillNanos += int64(consumedNanos)
}

// refillIntervally credits refillTokens for each complete period elapsed
// and advances lastRefillNanos by exactly that many whole periods.
func refillIntervally(rt *bandwidthRuntime, bw *Bandwidth, elapsed int64) {
	periods := elapsed / bw.refillPeriod
	if periods == 0 {
		return
	}

	// A deficit left by a reservation is paid off first; only the surplus
	// beyond capacity is dropped.
	hi, lo := bits.Mul64(uint64(periods), uint64(bw.refillTokens))
	room := uint64(bw.capacity) - uint64(rt.currentTokens)
	if hi != 0 || lo >= room {
		rt.currentTokens = bw.capacity
	} else {
		rt.currentTokens += int64(lo)
	}

	rt.lastRefillNanos += periods * bw.refillPeriod
}

func clampToCapacity(tokens, capacity int64) int64 {
	if tokens > capacity {
		return capacity
	}

	return tokens
}

// availableTokens is the minimum currentTokens across all bandwidths,
// floored at 0. Caller must have refilled the state to the desired instant
// first.
func (s *BucketState) availableTokens() uint64 {
	min := int64(math.MaxInt64)
	for i := range s.runtime {
		if s.runtime[i].currentTokens < min {
			min = s.runtime[i].currentTokens
		}
	}

	if min < 0 {
		return 0
	}

	return uint64(min)
}

// consume subtracts n from every bandwidth's currentTokens, unconditionally
// and without refilling. May drive a bandwidth negative (reservation).
func (s *BucketState) consume(n uint64) {
	for i := range s.runtime {
		s.runtime[i].currentTokens -= int64(n)
	}
}

// addTokens adds m to every bandwidth's currentTokens, clamping each to its
// capacity. Caller must have refilled the state first.
func (s *BucketState) addTokens(m uint64) {
	for i := range s.runtime {
		rt := &s.runtime[i]
		rt.currentTokens = clampToCapacity(rt.currentTokens+int64(m), s.config.bandwidths[i].capacity)
	}
}

// delayNanosFor returns the smallest non-negative duration after which
// every bandwidth would have at least n tokens if no further consumption
// occurs, measured from now. Caller must have refilled the state to now
// first. n may exceed a bandwidth's capacity (a reservation only checks that
// n is positive); the delay then covers the whole deficit. A delay too large
// for an int64 is reported as math.MaxInt64.
func (s *BucketState) delayNanosFor(n uint64, now int64) int64 {
	var maxDelay int64

	for i := range s.runtime {
		rt := &s.runtime[i]
		bw := &s.config.bandwidths[i]

		if rt.currentTokens >= int64(n) {
			continue
		}

		deficit := int64(n) - rt.currentTokens

		var delay int64
		if bw.mode == Intervally {
			delay = intervallyDelay(rt, bw, deficit, now)
		} else {
			delay = greedyDelay(bw, deficit)
		}

		if delay > maxDelay {
			maxDelay = delay
		}
	}

	return maxDelay
}

func greedyDelay(bw *Bandwidth, deficit int64) int64 {
	delay, overflow := mulDivCeil(uint64(deficit), uint64(bw.refillPeriod), uint64(bw.refillTokens))
	if overflow || delay > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(delay)
}

// intervallyDelay relies on refill having already advanced lastRefillNanos
// to the most recent period boundary at or before now, so now -
// lastRefillNanos is exactly the time already spent in the current,
// not-yet-complete period.
func intervallyDelay(rt *bandwidthRuntime, bw *Bandwidth, deficit, now int64) int64 {
	periodsNeeded := ceilDivInt64(deficit, bw.refillTokens)

	hi, lo := bits.Mul64(uint64(periodsNeeded), uint64(bw.refillPeriod))
	if hi != 0 || lo > math.MaxInt64 {
		return math.MaxInt64
	}

	elapsedIntoPeriod := now - rt.lastRefillNanos

	delay := int64(lo) - elapsedIntoPeriod
	if delay < 0 {
		return 0
	}

	return delay
}
