package tbucket

import "errors"

// ErrEmptyConfiguration is returned by [NewBucketConfiguration] when called
// with zero bandwidths. A bucket configuration forms a conjunction over its
// bandwidths, so an empty one has no meaning.
var ErrEmptyConfiguration = errors.New("tbucket: bucket configuration must have at least one bandwidth")

// BucketConfiguration is an immutable, ordered, non-empty sequence of
// [Bandwidth] rules. A consume succeeds only when every bandwidth in the
// sequence can admit it.
type BucketConfiguration struct {
	bandwidths  []Bandwidth
	minCapacity int64
}

// NewBucketConfiguration builds a configuration from one or more bandwidths,
// in the order given. The order is preserved and is the order in which
// per-bandwidth runtime state is laid out in every [BucketState] built from
// this configuration.
func NewBucketConfiguration(bandwidths ...Bandwidth) (*BucketConfiguration, error) {
	if len(bandwidths) == 0 {
		return nil, ErrEmptyConfiguration
	}

	owned := make([]Bandwidth, len(bandwidths))
	copy(owned, bandwidths)

	minCapacity := owned[0].capacity
	for _, b := range owned[1:] {
		if b.capacity < minCapacity {
			minCapacity = b.capacity
		}
	}

	return &BucketConfiguration{bandwidths: owned, minCapacity: minCapacity}, nil
}

// MustNewBucketConfiguration is [NewBucketConfiguration] but panics instead
// of returning an error.
func MustNewBucketConfiguration(bandwidths ...Bandwidth) *BucketConfiguration {
	cfg, err := NewBucketConfiguration(bandwidths...)
	if err != nil {
		panic("tbucket: " + err.Error())
	}

	return cfg
}

// Bandwidths returns a defensive copy of the configured bandwidths, in
// order. Mutating the returned slice does not affect the configuration.
func (c *BucketConfiguration) Bandwidths() []Bandwidth {
	out := make([]Bandwidth, len(c.bandwidths))
	copy(out, c.bandwidths)

	return out
}

// Len returns the number of bandwidths in the configuration.
func (c *BucketConfiguration) Len() int { return len(c.bandwidths) }

// MinCapacity returns the smallest capacity across all configured
// bandwidths — the ceiling TryConsume and TryConsumeAndReturnRemaining
// enforce on a request. Reservations and AddTokens are not bound by it.
func (c *BucketConfiguration) MinCapacity() int64 { return c.minCapacity }
