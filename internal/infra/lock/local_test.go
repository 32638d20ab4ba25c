package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SerializesSameBusiness(t *testing.T) {
	locker := NewLocalLocker()

	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), 1)
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

func TestLocalLocker_DifferentBusinessesDoNotContend(t *testing.T) {
	locker := NewLocalLocker()

	release1, err := locker.Acquire(context.Background(), 1)
	require.NoError(t, err)
	defer release1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	release2, err := locker.Acquire(ctx, 2)
	require.NoError(t, err)
	release2()
}

func TestLocalLocker_RespectsContext(t *testing.T) {
	locker := NewLocalLocker()

	release, err := locker.Acquire(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Acquire(ctx, 1)
	assert.ErrorIs(t, err, ErrNotAcquired)

	release()
	release()

	again, err := locker.Acquire(context.Background(), 1)
	require.NoError(t, err)
	again()
}
