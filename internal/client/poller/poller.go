// Package poller is the Polling Refresh Controller: a self-rescheduling
// poller that never overlaps its own requests, and a debouncer for filter
// input.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/requestdesk/internal/clock"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
)

// DefaultInterval is used when Config.Interval is not positive.
const DefaultInterval = 5 * time.Second

// Config describes one poller.
type Config[T any] struct {
	// Interval between the settlement of one fetch and the start of the next.
	Interval time.Duration
	Clock    clock.Clock
	Log      logging.Logger
	// Name tags log lines.
	Name string

	// Fetch loads the data. Its context is cancelled by Stop.
	Fetch func(ctx context.Context) (T, error)
	// OnResult receives every settled fetch, including failures. It is never
	// called after Stop returns, and must not call Stop itself.
	OnResult func(v T, err error)
}

// Poller runs Fetch immediately on Start and then again Interval after each
// fetch settles. At most one fetch is in flight at any time.
type Poller[T any] struct {
	cfg Config[T]

	mu       sync.Mutex
	running  bool
	inFlight bool
	pending  bool
	gen      uint64
	ctx      context.Context
	cancel   context.CancelFunc
	timer    *clock.Timer

	// held while OnResult runs, so Stop can wait for a delivery to finish
	deliver sync.Mutex
}

func New[T any](cfg Config[T]) *Poller[T] {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Log == nil {
		cfg.Log = logging.Nop()
	}
	if cfg.OnResult == nil {
		cfg.OnResult = func(T, error) {}
	}
	return &Poller[T]{cfg: cfg}
}

// Start begins polling with an immediate fetch. Starting a running poller
// does nothing.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.gen++
	p.ctx, p.cancel = context.WithCancel(ctx)
	go p.run(p.gen)
}

// Trigger fetches now instead of waiting for the timer, for example after a
// filter change or a mutation. While a fetch is in flight the request is
// remembered and served right after it settles.
func (p *Poller[T]) Trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	if p.inFlight {
		p.pending = true
		return
	}
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	go p.run(p.gen)
}

// Stop cancels the timer and any in-flight fetch. Once Stop returns,
// OnResult is not called again and nothing is rescheduled.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	// a fetch still settling belongs to the old generation and must not
	// hold back the next Start
	p.inFlight = false
	p.pending = false
	p.gen++
	p.cancel()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	// wait for a delivery that passed its check before Stop
	p.deliver.Lock()
	p.deliver.Unlock()
}

// Running reports whether the poller is started.
func (p *Poller[T]) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller[T]) current(gen uint64) bool {
	return p.running && p.gen == gen
}

func (p *Poller[T]) run(gen uint64) {
	p.mu.Lock()
	if !p.current(gen) || p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.timer = nil
	ctx := p.ctx
	p.mu.Unlock()

	v, err := p.cfg.Fetch(ctx)
	if err != nil {
		p.cfg.Log.Warn(ctx, "poll failed", "poller", p.cfg.Name, "err", err)
	}

	p.deliver.Lock()
	p.mu.Lock()
	ok := p.current(gen)
	p.mu.Unlock()
	if ok {
		p.cfg.OnResult(v, err)
	}
	p.deliver.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.current(gen) {
		return
	}
	p.inFlight = false
	if p.pending {
		p.pending = false
		go p.run(gen)
		return
	}
	p.timer = p.cfg.Clock.AfterFunc(p.cfg.Interval, func() { p.run(gen) })
}
