// Package timer provides a resumable countdown with a completion callback.
//
// The countdown target may be set, changed, or left unset while the timer
// is running: a timer with no target never fires, whatever its elapsed
// time. This lets callers wire the callback once at start time, before
// the target duration is known.
package timer

import (
	"sync"
	"time"
)

// Timer counts elapsed wall-clock time towards an optional target and
// invokes its callback exactly once when the target is reached.
//
// Pausing preserves elapsed time. Reset clears elapsed time and the
// target and reliably cancels any pending firing: a callback never runs
// against a reset or paused timer.
type Timer struct {
	mu        sync.Mutex
	fn        func()
	handle    *time.Timer
	target    time.Duration
	hasTarget bool
	elapsed   time.Duration // accumulated across pause cycles
	resumedAt time.Time     // start of the current running stretch
	running   bool
	paused    bool
	fired     bool
}

// New returns a stopped timer.
func New() *Timer {
	return &Timer{}
}

// Start begins counting from zero with no target and registers the
// completion callback. Any previous state is discarded.
func (t *Timer) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopHandleLocked()
	t.fn = fn
	t.target = 0
	t.hasTarget = false
	t.elapsed = 0
	t.resumedAt = time.Now()
	t.running = true
	t.paused = false
	t.fired = false
}

// SetTarget sets or replaces the countdown target on a running timer.
// Elapsed time counts against the new target immediately: if the timer
// has already run past it, the callback fires right away. On a stopped
// timer this is a no-op.
func (t *Timer) SetTarget(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running || t.fired {
		return
	}
	t.target = d
	t.hasTarget = true
	t.scheduleLocked()
}

// Pause suspends the countdown, preserving elapsed time.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running || t.paused {
		return
	}
	t.elapsed += time.Since(t.resumedAt)
	t.paused = true
	t.stopHandleLocked()
}

// Resume continues the countdown after a pause.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running || !t.paused {
		return
	}
	t.paused = false
	t.resumedAt = time.Now()
	t.scheduleLocked()
}

// Reset stops the timer, clears elapsed time and the target, and cancels
// any pending firing.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopHandleLocked()
	t.fn = nil
	t.target = 0
	t.hasTarget = false
	t.elapsed = 0
	t.running = false
	t.paused = false
	t.fired = false
}

// Elapsed returns the accumulated running time.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

// Target returns the countdown target and whether one is set.
func (t *Timer) Target() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target, t.hasTarget
}

// HasExpired reports whether the countdown completed and the callback
// ran. A timer with no target never expires.
func (t *Timer) HasExpired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// IsRunning reports whether the timer has been started and not reset.
// A paused timer is still running.
func (t *Timer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Timer) elapsedLocked() time.Duration {
	if t.running && !t.paused {
		return t.elapsed + time.Since(t.resumedAt)
	}
	return t.elapsed
}

// scheduleLocked arms the underlying firing for the remaining duration.
// Callers ensure the timer is running, unfired, and has a target; while
// paused nothing is armed (Resume re-schedules).
func (t *Timer) scheduleLocked() {
	t.stopHandleLocked()
	if t.paused || !t.hasTarget {
		return
	}
	remaining := t.target - t.elapsedLocked()
	if remaining < 0 {
		remaining = 0
	}
	t.handle = time.AfterFunc(remaining, t.fire)
}

// stopHandleLocked cancels the armed firing, if any. A callback that
// already started re-checks state under the mutex, so a stop here is
// always effective.
func (t *Timer) stopHandleLocked() {
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
}

func (t *Timer) fire() {
	t.mu.Lock()
	if !t.running || t.paused || t.fired || !t.hasTarget {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}
