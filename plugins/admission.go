// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"
	"sync"
	"time"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// admission is a bounded semaphore: at most Limit callers hold a permit
// at once, at most HardLimit additional callers may be queued waiting
// for one, and each waiter gives up after Timeout (when positive).
type admission struct {
	mu      sync.Mutex
	permits int
	limit   int

	hardLimit int
	pending   int
	timeout   time.Duration

	closed bool
	waiters []chan struct{}
}

func newAdmission(limit, hardLimit int, timeout time.Duration) *admission {
	return &admission{
		permits:   limit,
		limit:     limit,
		hardLimit: hardLimit,
		timeout:   timeout,
	}
}

// acquire blocks until a permit is available, the waiter's timeout
// elapses, ctx is canceled, or the admission queue is closed.
func (a *admission) acquire(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return &svcclient.ErrConnectionClosed{}
	}
	if a.permits > 0 {
		a.permits--
		a.mu.Unlock()
		return nil
	}
	if a.hardLimit > 0 && a.pending >= a.hardLimit {
		a.mu.Unlock()
		return &svcclient.ErrTooManyRequestsPending{HardLimit: a.hardLimit}
	}

	ch := make(chan struct{})
	a.waiters = append(a.waiters, ch)
	a.pending++
	a.mu.Unlock()

	var timeoutC <-chan time.Time
	if a.timeout > 0 {
		timer := time.NewTimer(a.timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	select {
	case <-ch:
		a.mu.Lock()
		a.pending--
		closed := a.closed
		a.mu.Unlock()
		if closed {
			return &svcclient.ErrConnectionClosed{}
		}
		return nil
	case <-timeoutC:
		a.removeWaiter(ch)
		return &svcclient.ErrTooMuchTimePending{Timeout: a.timeout.Seconds()}
	case <-ctx.Done():
		a.removeWaiter(ch)
		return ctx.Err()
	}
}

// release returns a permit, waking the oldest waiter if any.
func (a *admission) release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.waiters) > 0 {
		ch := a.waiters[0]
		a.waiters = a.waiters[1:]
		close(ch)
		return
	}
	a.permits++
}

// close wakes every waiter with [svcclient.ErrConnectionClosed] and
// rejects future acquires the same way.
func (a *admission) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	for _, ch := range a.waiters {
		close(ch)
	}
	a.waiters = nil
}

func (a *admission) removeWaiter(target chan struct{}) {
	a.mu.Lock()
	for i, ch := range a.waiters {
		if ch == target {
			a.waiters = append(a.waiters[:i], a.waiters[i+1:]...)
			a.pending--
			a.mu.Unlock()
			return
		}
	}
	// Not queued anymore: a release handed this waiter a permit
	// concurrently with its timeout/cancellation. Give the permit back
	// so the next waiter (or a future acquire) gets it.
	a.pending--
	closed := a.closed
	a.mu.Unlock()
	if !closed {
		a.release()
	}
}
