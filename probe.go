package tbucket

// ConsumptionProbe is the outcome of [Bucket.TryConsumeAndReturnRemaining]:
// a tagged variant, not a nullable object. Use [ConsumptionProbe.Consumed]
// to discriminate before reading the other fields.
type ConsumptionProbe struct {
	consumed             bool
	remainingTokens      uint64
	nanosToWaitForRefill int64
}

// consumedProbe builds the Consumed(remaining) variant.
func consumedProbe(remaining uint64) ConsumptionProbe {
	return ConsumptionProbe{consumed: true, remainingTokens: remaining}
}

// rejectedProbe builds the Rejected(remaining, nanosToWait) variant.
func rejectedProbe(remaining uint64, nanosToWait int64) ConsumptionProbe {
	return ConsumptionProbe{remainingTokens: remaining, nanosToWaitForRefill: nanosToWait}
}

// Consumed reports whether the probed consume attempt succeeded.
func (p ConsumptionProbe) Consumed() bool { return p.consumed }

// RemainingTokens is the available-tokens reading immediately after the
// probed operation: the post-consume balance on success, or the balance
// that was too small to admit the request on rejection. Always
// non-negative.
func (p ConsumptionProbe) RemainingTokens() uint64 { return p.remainingTokens }

// NanosToWaitForRefill is the estimated delay before the request could
// succeed. Zero when Consumed is true.
func (p ConsumptionProbe) NanosToWaitForRefill() int64 { return p.nanosToWaitForRefill }
