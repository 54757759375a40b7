package tbucket

import (
	"errors"
	"time"
)

// RefillMode selects how a [Bandwidth] credits tokens over time.
type RefillMode uint8

const (
	// Greedy accrues tokens continuously at rate refillTokens/refillPeriod.
	Greedy RefillMode = iota
	// Intervally credits refillTokens in a single lump sum at each period
	// boundary.
	Intervally
)

// String implements fmt.Stringer for diagnostic output.
func (m RefillMode) String() string {
	if m == Intervally {
		return "intervally"
	}
	return "greedy"
}

// ErrInvalidBandwidth is returned by [NewBandwidth] when the descriptor
// cannot be constructed safely (non-positive capacity, refill rate, or
// period). It is distinct from the three operation-time sentinel errors in
// errors.go: this one fires at construction, before any bucket exists.
//
// Deeper semantic checks — e.g. that initialTokens fits within capacity, or
// that refillTokens does not exceed capacity — are the caller-supplied
// validator's job per this package's scope; NewBandwidth clamps those two
// fields into range rather than rejecting them, so a slightly-out-of-range
// literal never panics or corrupts refill arithmetic.
var ErrInvalidBandwidth = errors.New("tbucket: invalid bandwidth")

// Bandwidth is an immutable rate-limit rule: a capacity paired with a
// refill schedule. A [BucketConfiguration] is an ordered, non-empty list of
// Bandwidths; a consume only succeeds when every bandwidth in the list
// admits it.
type Bandwidth struct {
	capacity      int64
	initialTokens int64
	refillTokens  int64
	refillPeriod  int64 // nanoseconds
	mode          RefillMode
}

// NewBandwidth constructs a Bandwidth. capacity, refillTokens, and
// refillPeriod must all be positive, or ErrInvalidBandwidth is returned.
// initialTokens is clamped into [0, capacity]; refillTokens is clamped to
// capacity. Both clamps keep the refill algebra well-defined even when a
// caller hands this constructor a config value that an external validator
// would otherwise reject outright.
func NewBandwidth(
	capacity, initialTokens, refillTokens int64,
	refillPeriod time.Duration,
	mode RefillMode,
) (Bandwidth, error) {
	if capacity <= 0 || refillTokens <= 0 || refillPeriod <= 0 {
		return Bandwidth{}, ErrInvalidBandwidth
	}

	if initialTokens < 0 {
		initialTokens = 0
	} else if initialTokens > capacity {
		initialTokens = capacity
	}

	if refillTokens > capacity {
		refillTokens = capacity
	}

	return Bandwidth{
		capacity:      capacity,
		initialTokens: initialTokens,
		refillTokens:  refillTokens,
		refillPeriod:  int64(refillPeriod),
		mode:          mode,
	}, nil
}

// MustNewBandwidth is [NewBandwidth] but panics instead of returning an
// error. Grounded on the MustNew convention the cache adapter submodules
// (cache/ristretto, cache/otter) use for their own unrecoverable
// construction failures.
func MustNewBandwidth(
	capacity, initialTokens, refillTokens int64,
	refillPeriod time.Duration,
	mode RefillMode,
) Bandwidth {
	b, err := NewBandwidth(capacity, initialTokens, refillTokens, refillPeriod, mode)
	if err != nil {
		panic("tbucket: " + err.Error())
	}

	return b
}

// GreedyBandwidth is a convenience constructor for a Greedy bandwidth that
// starts full (initialTokens == capacity).
func GreedyBandwidth(capacity, refillTokens int64, refillPeriod time.Duration) (Bandwidth, error) {
	return NewBandwidth(capacity, capacity, refillTokens, refillPeriod, Greedy)
}

// IntervallyBandwidth is a convenience constructor for an Intervally
// bandwidth that starts full (initialTokens == capacity).
func IntervallyBandwidth(capacity, refillTokens int64, refillPeriod time.Duration) (Bandwidth, error) {
	return NewBandwidth(capacity, capacity, refillTokens, refillPeriod, Intervally)
}

// Capacity returns the bandwidth's maximum token count.
func (b Bandwidth) Capacity() int64 { return b.capacity }

// InitialTokens returns the token count a new bucket starts with for this
// bandwidth.
func (b Bandwidth) InitialTokens() int64 { return b.initialTokens }

// RefillTokens returns the number of tokens credited per refill period.
func (b Bandwidth) RefillTokens() int64 { return b.refillTokens }

// RefillPeriod returns the refill period.
func (b Bandwidth) RefillPeriod() time.Duration { return time.Duration(b.refillPeriod) }

// Mode returns the refill mode (Greedy or Intervally).
func (b Bandwidth) Mode() RefillMode { return b.mode }
