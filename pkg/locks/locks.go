// Package locks serializes pour processing per user. Pours from distinct
// taps may complete concurrently; two concurrent pours by the same user must
// not both read the same grant's remaining volume.
package locks

import "context"

// Release frees a previously acquired lock.
type Release func(ctx context.Context) error

// Locker grants exclusive ownership of a key for the duration of one pour.
// Acquire blocks until the lock is owned or ctx is done.
type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}
