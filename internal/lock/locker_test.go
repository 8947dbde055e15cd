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

func TestLocalLocker_SerializesSameProperty(t *testing.T) {
	l := NewLocalLocker(time.Second)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), 1)
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
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.slots)
}

func TestLocalLocker_IndependentProperties(t *testing.T) {
	l := NewLocalLocker(time.Second)

	r1, err := l.Acquire(context.Background(), 1)
	require.NoError(t, err)
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	r2, err := l.Acquire(ctx, 2)
	require.NoError(t, err)
	r2()
}

func TestLocalLocker_Timeout(t *testing.T) {
	l := NewLocalLocker(time.Second)

	release, err := l.Acquire(context.Background(), 5)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, 5)
	assert.ErrorIs(t, err, ErrLockTimeout)

	release()
	release()

	again, err := l.Acquire(context.Background(), 5)
	require.NoError(t, err)
	again()
}

func TestLocalLocker_ConfiguredWaitBeatsCallerDeadline(t *testing.T) {
	l := NewLocalLocker(30 * time.Millisecond)

	release, err := l.Acquire(context.Background(), 9)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err = l.Acquire(ctx, 9)
	waited := time.Since(start)

	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.Less(t, waited, time.Second)
	assert.NoError(t, ctx.Err())
}

func TestLocalLocker_CallerCancel(t *testing.T) {
	l := NewLocalLocker(time.Second)

	release, err := l.Acquire(context.Background(), 3)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Acquire(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalLocker_DefaultWait(t *testing.T) {
	assert.Equal(t, DefaultWait, NewLocalLocker(0).wait)
}
