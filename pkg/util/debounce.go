// pkg/util/debounce.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Kick calls into a single invocation of
// the callback once the configured window has passed without another
// Kick.  A Kick within the window cancels and restarts the pending timer,
// so only the most recent burst fires.  The callback runs on a timer
// goroutine; callees are responsible for their own locking.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	fn    func()
	timer *time.Timer
}

func NewDebouncer(d time.Duration, fn func()) *Debouncer {
	return &Debouncer{d: d, fn: fn}
}

// Kick schedules (or reschedules) the callback.
func (d *Debouncer) Kick() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.d, d.fn)
}

// Flush cancels any pending timer and runs the callback immediately if
// one was pending.  Used at shutdown so the last burst isn't lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()

	if pending {
		d.fn()
	}
}

// Cancel drops any pending invocation.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
