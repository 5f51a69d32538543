// Package debounce collapses a rapidly changing value stream:
// the latest value is emitted only after the delay elapses with
// no intervening push.
package debounce

import (
	"sync"
	"time"
)

type Debouncer[T any] struct {
	delay time.Duration
	timer *time.Timer
	out   chan T

	mu       sync.Mutex
	last     T
	lastPush time.Time
	pending  bool
}

func New[T any](delay time.Duration) *Debouncer[T] {
	d := &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
	d.timer = time.AfterFunc(delay, d.fire)
	d.timer.Stop()
	return d
}

// Push supplies the next value and restarts the delay.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = v
	d.pending = true
	d.lastPush = time.Now()
	d.timer.Reset(d.delay)
}

// C delivers debounced values. The channel holds at most one value,
// a newer emission replaces an unconsumed older one.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Flush emits the pending value immediately.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.pending {
		return
	}
	d.timer.Stop()
	d.pending = false
	d.emit(d.last)
}

// Cancel suppresses the pending value.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timer.Stop()
	d.pending = false
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.pending {
		return
	}

	// a push may land between the timer expiring and this callback
	// taking the lock; that value has not had its own quiescent period
	if elapsed := time.Since(d.lastPush); elapsed < d.delay {
		d.timer.Reset(d.delay - elapsed)
		return
	}

	d.pending = false
	d.emit(d.last)
}

// emit never blocks: a stale unconsumed value is dropped first.
func (d *Debouncer[T]) emit(v T) {
	select {
	case d.out <- v:
	default:
		select {
		case <-d.out:
		default:
		}
		d.out <- v
	}
}
