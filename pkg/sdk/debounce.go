package labdex

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before search input is committed.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer commits the last value passed to Set once no newer value arrived for the
// configured delay. The commit callback runs on the timer goroutine.
type Debouncer struct {
	delay  time.Duration
	commit func(string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	armed   bool
	gen     uint64
}

// NewDebouncer creates a Debouncer. A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Set replaces the pending value and restarts the timer.
func (d *Debouncer) Set(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire commits unless a newer Set, a Flush or a Stop happened since the timer was armed.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.armed = false
	v := d.pending
	d.mu.Unlock()

	d.commit(v)
}

// Flush commits the pending value immediately. Reports whether anything was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	d.armed = false
	v := d.pending
	d.mu.Unlock()

	d.commit(v)
	return true
}

// Stop drops the pending value without committing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.armed = false
}
