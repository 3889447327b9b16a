package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutexLocker_SerializesSameRoom(t *testing.T) {
	locker := NewKeyedMutexLocker()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Lock(ctx, "room1")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestKeyedMutexLocker_DifferentRoomsDoNotBlock(t *testing.T) {
	locker := NewKeyedMutexLocker()
	ctx := context.Background()

	release1, err := locker.Lock(ctx, "room1")
	require.NoError(t, err)
	defer release1()

	ctx2, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	release2, err := locker.Lock(ctx2, "room2")
	require.NoError(t, err)
	release2()
}

func TestKeyedMutexLocker_ContextCancelWhileWaiting(t *testing.T) {
	locker := NewKeyedMutexLocker()

	release, err := locker.Lock(context.Background(), "room1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "room1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()

	again, err := locker.Lock(context.Background(), "room1")
	require.NoError(t, err)
	again()

	assert.Empty(t, locker.(*keyedMutexLocker).entries)
}
