// Package lock provides per-course mutual exclusion for lifecycle transitions.
// The persistence layer's compare-and-swap remains the correctness guarantee;
// a lock narrows the window in which concurrent transitions fail on it.
package lock

import (
	"context"
	"sync"
)

// Locker serializes lifecycle transitions per course.
type Locker interface {
	// Acquire blocks until the course lock is held or ctx is done. The returned
	// release function must be called exactly once.
	Acquire(ctx context.Context, courseID string) (release func(), err error)
}

// MemoryLocker is an in-process Locker for single-instance deployments and tests.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*courseLock
}

type courseLock struct {
	ch   chan struct{} // Holds one token when unlocked
	refs int
}

// NewMemoryLocker creates an in-process per-course locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*courseLock)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, courseID string) (func(), error) {
	l.mu.Lock()

	cl, ok := l.locks[courseID]
	if !ok {
		cl = &courseLock{ch: make(chan struct{}, 1)}
		cl.ch <- struct{}{}
		l.locks[courseID] = cl
	}

	cl.refs++
	l.mu.Unlock()

	select {
	case <-cl.ch:
		return func() {
			cl.ch <- struct{}{}

			l.mu.Lock()
			cl.refs--

			if cl.refs == 0 {
				delete(l.locks, courseID)
			}
			l.mu.Unlock()
		}, nil
	case <-ctx.Done():
		l.mu.Lock()
		cl.refs--

		if cl.refs == 0 {
			delete(l.locks, courseID)
		}
		l.mu.Unlock()

		return nil, ctx.Err()
	}
}
