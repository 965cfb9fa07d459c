package collection

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of calls into a single deferred one: Arm starts
// (or restarts) the quiet-period timer, and the most recently armed function
// fires once the period elapses without another Arm.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Arm schedules fn to run after the quiet period, cancelling any previously
// armed call. A non-positive delay runs fn synchronously.
func (d *Debouncer) Arm(fn func()) {
	if d.delay <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
