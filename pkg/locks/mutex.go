package locks

import (
	"context"
	"sync"
)

// MutexLocker is an in-process Locker for single-node deployments and tests.
type MutexLocker struct {
	mu   sync.Mutex
	keys map[string]chan struct{}
}

// NewMutexLocker constructs an in-process keyed locker.
func NewMutexLocker() *MutexLocker {
	return &MutexLocker{keys: make(map[string]chan struct{})}
}

func (l *MutexLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.keys[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.keys[key] = slot
	}
	return slot
}

// Acquire blocks until the key is free or ctx is done.
func (l *MutexLocker) Acquire(ctx context.Context, key string) (Release, error) {
	slot := l.slot(key)
	select {
	case slot <- struct{}{}:
		return func(context.Context) error {
			<-slot
			return nil
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
