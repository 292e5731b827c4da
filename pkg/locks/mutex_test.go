package locks

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMutexLocker_SerializesSameKey(t *testing.T) {
	locker := NewMutexLocker()
	ctx := context.Background()

	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(ctx, "user-a")
			if err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			_ = release(ctx)
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("expected one holder at a time, saw %d", maxActive)
	}
}

func TestMutexLocker_DistinctKeysDoNotBlock(t *testing.T) {
	locker := NewMutexLocker()
	ctx := context.Background()

	relA, err := locker.Acquire(ctx, "user-a")
	if err != nil {
		t.Fatalf("acquire a: %v", err)
	}
	defer relA(ctx)

	ctxB, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	relB, err := locker.Acquire(ctxB, "user-b")
	if err != nil {
		t.Fatalf("distinct key should not block: %v", err)
	}
	_ = relB(ctx)
}

func TestMutexLocker_AcquireHonorsContext(t *testing.T) {
	locker := NewMutexLocker()
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "user-a")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release(ctx)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := locker.Acquire(waitCtx, "user-a"); err == nil {
		t.Fatal("expected context deadline while waiting for held lock")
	}
}
