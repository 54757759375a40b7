package tbucket

import "time"

// Clock is the Time Source contract: it returns a monotonically
// non-decreasing nanosecond timestamp. Production code uses [RealClock];
// tests substitute a manually advanceable fake to control refill timing
// deterministically.
//
// If a caller-supplied implementation ever produces a timestamp earlier
// than one it has already returned, the bucket treats the resulting refill
// as a no-op rather than letting last_refill_nanos move backward.
type Clock interface {
	// NowNanos returns the current time as a nanosecond timestamp.
	NowNanos() int64
}

// RealClock is a zero-value [Clock] backed by the runtime's monotonic
// clock. It is safe for concurrent use because it holds no mutable state.
type RealClock struct{}

// realClockBase is the reading every RealClock timestamp is measured from.
var realClockBase = time.Now()

// NowNanos returns the Unix-nanosecond wall time of package initialisation
// plus the monotonic time elapsed since then, so successive readings never
// decrease even if the wall clock is stepped backward.
func (RealClock) NowNanos() int64 {
	return realClockBase.UnixNano() + int64(time.Since(realClockBase))
}
