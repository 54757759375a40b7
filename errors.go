package tbucket

// BucketError is implemented by the three operation-time sentinel errors
// below. The construction-time errors [ErrInvalidBandwidth] and
// [ErrEmptyConfiguration] do not implement it. It lets callers distinguish
// bucket precondition failures from application errors using [errors.As].
type BucketError interface {
	error
	IsBucketError() bool
}

// bucketError is the concrete type backing the operation-time sentinel errors.
type bucketError string

func (e bucketError) Error() string       { return string(e) }
func (e bucketError) IsBucketError() bool { return true }

// Sentinel errors. All pre-validation happens before a mutating operation
// enters its atomic section, so none of these ever leave a bucket partially
// modified.
var (
	// ErrNonPositiveTokens is returned when a consume/reserve/add request
	// passed n <= 0.
	ErrNonPositiveTokens error = bucketError("tbucket: requested tokens must be positive")
	// ErrTokensMoreThanCapacity is returned when n exceeds the smallest
	// capacity across the bucket's configured bandwidths.
	ErrTokensMoreThanCapacity error = bucketError("tbucket: requested tokens exceed bucket capacity")
	// ErrNegativeWaitLimit is returned when wait_limit_nanos < 0.
	ErrNegativeWaitLimit error = bucketError("tbucket: wait limit must not be negative")
)
