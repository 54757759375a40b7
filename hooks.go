package tbucket

// Hooks holds optional callback functions for bucket lifecycle events. All
// fields are nil by default; callers set only the hooks they care about.
// Once constructed, a Hooks value must not be mutated — emit methods read
// the function fields without synchronisation, which is safe as long as the
// struct is read-only after initialisation. A nil *Hooks is valid and emits
// nothing.
//
// Pattern: Observer — decouples bucket event emission (for logging or
// metrics) from the bucket implementations, which never know who, if
// anyone, is listening.
type Hooks struct {
	// OnConsumed fires after a successful TryConsume or
	// TryConsumeAndReturnRemaining, and after a ConsumeAsMuchAsPossible that
	// consumed at least one token, with the number of tokens consumed.
	OnConsumed func(n uint64)
	// OnRejected fires when a consume attempt is denied for lack of tokens.
	OnRejected func(n uint64)
	// OnReserved fires after ReserveAndCalculateTimeToSleep admits a
	// reservation, with the delay the caller must sleep.
	OnReserved func(n uint64, delayNanos int64)
	// OnRefilled fires whenever a refill step actually credits tokens to the
	// bucket's published state, with the total number of tokens credited
	// summed across every bandwidth. It does not fire for a refill that
	// finds nothing to credit, nor for the lock-free bucket's read-only
	// paths (GetAvailableTokens, a losing CAS retry) that refill a working
	// copy but never publish it.
	OnRefilled func(n uint64)
	// OnAddTokens fires after AddTokens commits.
	OnAddTokens func(n uint64)
}

func (h *Hooks) emitConsumed(n uint64) {
	if h != nil && h.OnConsumed != nil {
		h.OnConsumed(n)
	}
}

func (h *Hooks) emitRejected(n uint64) {
	if h != nil && h.OnRejected != nil {
		h.OnRejected(n)
	}
}

func (h *Hooks) emitReserved(n uint64, delayNanos int64) {
	if h != nil && h.OnReserved != nil {
		h.OnReserved(n, delayNanos)
	}
}

func (h *Hooks) emitRefilled(n uint64) {
	if h != nil && h.OnRefilled != nil {
		h.OnRefilled(n)
	}
}

func (h *Hooks) emitAddTokens(n uint64) {
	if h != nil && h.OnAddTokens != nil {
		h.OnAddTokens(n)
	}
}
