// Package tbucket implements an in-process, multi-bandwidth token bucket.
//
// A Bucket is built from one or more [Bandwidth] rules composed into a
// [BucketConfiguration]; a consume only succeeds when every configured
// bandwidth has enough tokens. Two interchangeable implementations are
// provided behind the same [Bucket] interface: [SynchronizedBucket], guarded
// by a mutex, and [LockFreeBucket], which installs state via compare-and-
// swap retry. Both give identical observable semantics; pick the lock-free
// variant when contention is expected to be high and short-lived, the
// synchronized variant otherwise.
package tbucket
