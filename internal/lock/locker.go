package lock

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"
)

var ErrLockTimeout = errors.New("property lock not acquired in time")

// DefaultWait bounds lock acquisition when no wait is configured.
const DefaultWait = 3 * time.Second

// PropertyLocker serializes rental writes for one property. The returned
// release func is safe to call more than once.
type PropertyLocker interface {
	Acquire(ctx context.Context, propertyID int64) (release func(), err error)
}

func key(propertyID int64) string {
	return "brokerage:lock:property:" + strconv.FormatInt(propertyID, 10)
}

// LocalLocker is an in-process PropertyLocker for single instance
// deployments and tests. Acquire gives up with ErrLockTimeout after wait.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[int64]*slot
	wait  time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

var _ PropertyLocker = (*LocalLocker)(nil)

func NewLocalLocker(wait time.Duration) *LocalLocker {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &LocalLocker{slots: make(map[int64]*slot), wait: wait}
}

func (l *LocalLocker) Acquire(ctx context.Context, propertyID int64) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[propertyID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[propertyID] = s
	}
	s.refs++
	l.mu.Unlock()

	wctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	select {
	case s.ch <- struct{}{}:
	case <-wctx.Done():
		l.unref(propertyID, s)
		if errors.Is(wctx.Err(), context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, wctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.unref(propertyID, s)
		})
	}, nil
}

func (l *LocalLocker) unref(propertyID int64, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, propertyID)
	}
}
