package tbucket

import "math"

// RejectedReservation is the sentinel value returned by
// [Bucket.ReserveAndCalculateTimeToSleep] when the computed delay exceeds
// the caller's wait limit. It is math.MaxInt64, matching the "MAX sentinel"
// called out in the spec for this operation.
const RejectedReservation int64 = math.MaxInt64

// UnlimitedWait passed as waitLimitNanos to
// [Bucket.ReserveAndCalculateTimeToSleep] means "accept any delay".
const UnlimitedWait int64 = math.MaxInt64

// Bucket is the capability both bucket variants implement. A caller picks
// [NewSynchronizedBucket] or [NewLockFreeBucket]; both give identical
// observable semantics for every method below.
type Bucket interface {
	// TryConsume attempts to consume n tokens from every configured
	// bandwidth. Returns true and mutates state only if every bandwidth
	// currently has at least n tokens.
	TryConsume(n uint64) (bool, error)

	// TryConsumeAndReturnRemaining is TryConsume plus, on rejection, an
	// estimate of how long the caller would need to wait.
	TryConsumeAndReturnRemaining(n uint64) (ConsumptionProbe, error)

	// ConsumeAsMuchAsPossible consumes min(limit, available tokens) and
	// reports how many tokens were actually consumed. Never rejects: a
	// result of 0 just means no tokens were available.
	ConsumeAsMuchAsPossible(limit uint64) (uint64, error)

	// ReserveAndCalculateTimeToSleep computes how long the caller must
	// sleep before n tokens would be available, and — unless that delay
	// exceeds waitLimitNanos (when waitLimitNanos > 0) — consumes n
	// immediately, possibly driving a bandwidth negative. Pass
	// [UnlimitedWait] to accept any delay. Returns [RejectedReservation] if
	// the wait limit was exceeded; state is left untouched in that case.
	ReserveAndCalculateTimeToSleep(n uint64, waitLimitNanos int64) (int64, error)

	// AddTokens adds m tokens to every bandwidth, clamped to each
	// bandwidth's capacity. A bucket already at capacity cannot be
	// overfilled this way — see the design notes on this open question.
	AddTokens(m uint64) error

	// GetAvailableTokens refills and returns the current available token
	// count (the minimum across bandwidths, floored at 0).
	GetAvailableTokens() uint64

	// CreateSnapshot returns a deep copy of the current state. Snapshots
	// are opaque to this package; serializing one is a caller concern.
	CreateSnapshot() *BucketState

	// GetConfiguration returns the bucket's (immutable) configuration.
	GetConfiguration() *BucketConfiguration
}

// validateConsumeRequest is the pre-validation for TryConsume and
// TryConsumeAndReturnRemaining: n must be positive and must not exceed the
// smallest configured capacity. This always runs outside the atomic
// section, so a rejected request never touches bucket state.
//
// ConsumeAsMuchAsPossible, ReserveAndCalculateTimeToSleep, and AddTokens
// deliberately do NOT reuse this capacity ceiling (see
// validatePositive and DESIGN.md): their worked scenarios — a zero limit
// being valid input, and a reservation for more than a bandwidth's
// capacity succeeding with a computed delay (S5) — only hold if the
// ceiling check is scoped to the two try-consume operations.
func validateConsumeRequest(cfg *BucketConfiguration, n uint64) error {
	if n == 0 {
		return ErrNonPositiveTokens
	}

	if int64(n) > cfg.minCapacity {
		return ErrTokensMoreThanCapacity
	}

	return nil
}

// validatePositive checks only that n > 0, for operations — reservation and
// add-tokens — whose worked examples reserve or add more tokens than a
// bandwidth's capacity by design: a reservation borrows against future
// refills rather than being bounded by what the bucket could ever hold at
// rest, and add-tokens is simply clamped to capacity after the fact. See
// DESIGN.md for the reasoning.
func validatePositive(n uint64) error {
	if n == 0 {
		return ErrNonPositiveTokens
	}

	return nil
}

func validateWaitLimit(waitLimitNanos int64) error {
	if waitLimitNanos < 0 {
		return ErrNegativeWaitLimit
	}

	return nil
}
