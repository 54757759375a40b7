package tbucket

// Future is an already-completed asynchronous handle: Get returns
// immediately with the value a synchronous call already produced. Real
// asynchronous execution — deferring work to a pool, pairing with a
// scheduler-driven blocking wait — is a caller concern; this type only
// satisfies the shape callers used to a future-returning API expect.
type Future[T any] struct {
	value T
	err   error
}

// completedFuture wraps a synchronous result as an already-completed
// Future, the mechanical lifting called for by the design notes.
func completedFuture[T any](value T, err error) Future[T] {
	return Future[T]{value: value, err: err}
}

// Get returns the result. It never blocks: the work already happened
// before this Future was constructed.
func (f Future[T]) Get() (T, error) { return f.value, f.err }

// Async adapts a [Bucket] to expose [Future]-returning variants of its
// mutating operations and TryConsume-style queries. Every method below is a
// trivial synchronous call wrapped in [completedFuture]; it carries no
// additional semantics over the underlying Bucket.
type Async struct {
	bucket Bucket
}

// NewAsync wraps bucket for asynchronous-looking call sites.
func NewAsync(bucket Bucket) *Async { return &Async{bucket: bucket} }

// TryConsume mirrors [Bucket.TryConsume].
func (a *Async) TryConsume(n uint64) Future[bool] {
	return completedFuture(a.bucket.TryConsume(n))
}

// TryConsumeAndReturnRemaining mirrors
// [Bucket.TryConsumeAndReturnRemaining].
func (a *Async) TryConsumeAndReturnRemaining(n uint64) Future[ConsumptionProbe] {
	return completedFuture(a.bucket.TryConsumeAndReturnRemaining(n))
}

// ConsumeAsMuchAsPossible mirrors [Bucket.ConsumeAsMuchAsPossible].
func (a *Async) ConsumeAsMuchAsPossible(limit uint64) Future[uint64] {
	return completedFuture(a.bucket.ConsumeAsMuchAsPossible(limit))
}

// ReserveAndCalculateTimeToSleep mirrors
// [Bucket.ReserveAndCalculateTimeToSleep].
func (a *Async) ReserveAndCalculateTimeToSleep(n uint64, waitLimitNanos int64) Future[int64] {
	return completedFuture(a.bucket.ReserveAndCalculateTimeToSleep(n, waitLimitNanos))
}

// AddTokens mirrors [Bucket.AddTokens].
func (a *Async) AddTokens(m uint64) Future[struct{}] {
	return completedFuture(struct{}{}, a.bucket.AddTokens(m))
}
