package poller

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/requestdesk/internal/clock"
)

// DefaultDebounce is the quiet window used for filter input.
const DefaultDebounce = 350 * time.Millisecond

// Debouncer delays a call until no newer call has been made for the whole
// window. Each Call cancels the previous pending one.
type Debouncer struct {
	clock  clock.Clock
	window time.Duration

	mu      sync.Mutex
	timer   *clock.Timer
	seq     uint64
	stopped bool
}

func NewDebouncer(c clock.Clock, window time.Duration) *Debouncer {
	if c == nil {
		c = clock.Real()
	}
	return &Debouncer{clock: c, window: window}
}

// Call schedules f, replacing any call still waiting. A stopped debouncer
// ignores it. With a non-positive window f runs right away.
func (d *Debouncer) Call(f func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	seq := d.seq

	if d.window <= 0 {
		d.mu.Unlock()
		f()
		return
	}

	d.timer = d.clock.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.stopped || seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		f()
	})
	d.mu.Unlock()
}

// Pending reports whether a call is waiting for its window to pass.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending call; later calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
