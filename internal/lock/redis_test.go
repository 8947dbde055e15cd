package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl, wait time.Duration) (*miniredis.Miniredis, *RedisLocker) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisLocker(client, ttl, wait, nil)
}

func TestRedisLocker_AcquireSetsTokenWithTTL(t *testing.T) {
	mr, l := setupTestRedis(t, 10*time.Second, 100*time.Millisecond)

	release, err := l.Acquire(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, mr.Exists(key(1)))
	assert.Equal(t, 10*time.Second, mr.TTL(key(1)))

	release()
	assert.False(t, mr.Exists(key(1)))
}

func TestRedisLocker_SecondAcquireTimesOut(t *testing.T) {
	_, l := setupTestRedis(t, 10*time.Second, 100*time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, 2)
	require.NoError(t, err)
	defer release()

	start := time.Now()
	_, err = l.Acquire(ctx, 2)
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	other, err := l.Acquire(ctx, 3)
	require.NoError(t, err)
	other()
}

func TestRedisLocker_WaiterGetsLockAfterRelease(t *testing.T) {
	_, l := setupTestRedis(t, 10*time.Second, 2*time.Second)
	ctx := context.Background()

	release, err := l.Acquire(ctx, 4)
	require.NoError(t, err)

	go func() {
		time.Sleep(120 * time.Millisecond)
		release()
	}()

	again, err := l.Acquire(ctx, 4)
	require.NoError(t, err)
	again()
}

func TestRedisLocker_StaleReleaseKeepsNewHolder(t *testing.T) {
	mr, l := setupTestRedis(t, time.Second, 100*time.Millisecond)
	ctx := context.Background()

	stale, err := l.Acquire(ctx, 5)
	require.NoError(t, err)

	// the first holder overruns its ttl and a second writer takes over
	mr.FastForward(2 * time.Second)
	current, err := l.Acquire(ctx, 5)
	require.NoError(t, err)
	holder, err := mr.Get(key(5))
	require.NoError(t, err)

	stale()

	assert.True(t, mr.Exists(key(5)))
	got, err := mr.Get(key(5))
	require.NoError(t, err)
	assert.Equal(t, holder, got)

	_, err = l.Acquire(ctx, 5)
	assert.ErrorIs(t, err, ErrLockTimeout)

	current()
	assert.False(t, mr.Exists(key(5)))
}

func TestRedisLocker_DoubleReleaseIsHarmless(t *testing.T) {
	mr, l := setupTestRedis(t, 10*time.Second, 100*time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, 6)
	require.NoError(t, err)
	release()

	next, err := l.Acquire(ctx, 6)
	require.NoError(t, err)

	release()
	assert.True(t, mr.Exists(key(6)))

	next()
	next()
	assert.False(t, mr.Exists(key(6)))
}

func TestRedisLocker_CallerCancel(t *testing.T) {
	_, l := setupTestRedis(t, 10*time.Second, time.Second)

	release, err := l.Acquire(context.Background(), 7)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, 7)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrLockTimeout)
}
