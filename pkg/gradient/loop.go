package gradient

import (
	"context"
	"sync"
)

// Loop runs dispatched callbacks one at a time on a single goroutine. Frame
// callbacks of every animation sharing a Loop therefore never overlap, so
// they can share state without locking.
type Loop struct {
	calls     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop creates a loop. Call Run to start processing callbacks.
func NewLoop() *Loop {
	return &Loop{
		calls: make(chan func(), 16),
		done:  make(chan struct{}),
	}
}

// Run processes callbacks until ctx is done or the loop is closed. It
// returns ctx.Err() when the context ended the loop, nil otherwise.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.calls:
			fn()
		case <-l.done:
			return nil
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		}
	}
}

// Dispatch queues fn to run on the loop. It blocks while the queue is full
// and returns false if the loop was closed before fn was queued.
func (l *Loop) Dispatch(fn func()) bool {
	return l.dispatch(fn, nil)
}

// dispatch is Dispatch that also gives up when cancel is closed.
func (l *Loop) dispatch(fn func(), cancel <-chan struct{}) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.calls <- fn:
		return true
	case <-l.done:
		return false
	case <-cancel:
		return false
	}
}

// Close stops the loop. Queued callbacks that have not started are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
