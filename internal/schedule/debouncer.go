package schedule

import (
	"sync"
	"time"
)

// DefaultDebounce is the debounce window used when none is given.
const DefaultDebounce = 100 * time.Millisecond

// Debouncer coalesces rapid triggers into a single trailing invocation.
// When Trigger is called several times within the window only the callback
// passed to the last call runs.
type Debouncer struct {
	duration time.Duration
	sched    Scheduler

	mu    sync.Mutex
	timer Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer. A zero duration selects DefaultDebounce
// and a nil scheduler selects the system clock.
func NewDebouncer(duration time.Duration, sched Scheduler) *Debouncer {
	if duration == 0 {
		duration = DefaultDebounce
	}
	return &Debouncer{duration: duration, sched: OrSystem(sched)}
}

// Trigger schedules callback to run after the debounce window, replacing any
// callback scheduled earlier that has not run yet.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.sched.AfterFunc(d.duration, func() {
		shouldRun := func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()
			// A stale timer may fire after Stop lost the race; only the latest runs.
			if seq != d.seq {
				return false
			}
			d.timer = nil
			return true
		}()
		if !shouldRun {
			return
		}
		callback()
	})
}

// Cancel discards any pending callback without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a callback is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
