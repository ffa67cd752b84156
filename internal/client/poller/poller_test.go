package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/requestdesk/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// recorder collects OnResult calls.
type recorder struct {
	mu      sync.Mutex
	results []int
	errs    []error
	ch      chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 100)}
}

func (r *recorder) onResult(v int, err error) {
	r.mu.Lock()
	r.results = append(r.results, v)
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func TestPoller_ImmediateThenPeriodic(t *testing.T) {
	clk := clock.Fake(epoch)
	rec := newRecorder()
	var calls atomic.Int32

	p := New(Config[int]{
		Interval: 5 * time.Second,
		Clock:    clk,
		Fetch: func(ctx context.Context) (int, error) {
			return int(calls.Add(1)), nil
		},
		OnResult: rec.onResult,
	})
	p.Start(context.Background())
	defer p.Stop()

	rec.wait(t)
	clk.WaitForTimers(1)

	clk.Advance(4 * time.Second)
	assert.EqualValues(t, 1, calls.Load())

	clk.Advance(time.Second)
	rec.wait(t)
	assert.EqualValues(t, 2, calls.Load())

	clk.WaitForTimers(1)
	clk.Advance(5 * time.Second)
	rec.wait(t)
	assert.Equal(t, []int{1, 2, 3}, rec.results)
}

func TestPoller_OneInFlight(t *testing.T) {
	clk := clock.Fake(epoch)
	rec := newRecorder()
	release := make(chan struct{})
	var inFlight, maxInFlight, calls atomic.Int32

	p := New(Config[int]{
		Interval: time.Second,
		Clock:    clk,
		Fetch: func(ctx context.Context) (int, error) {
			n := inFlight.Add(1)
			if n > maxInFlight.Load() {
				maxInFlight.Store(n)
			}
			defer inFlight.Add(-1)
			c := calls.Add(1)
			if c == 1 {
				<-release
			}
			return int(c), nil
		},
		OnResult: rec.onResult,
	})
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	// slow first response: time passes and refreshes are requested
	clk.Advance(30 * time.Second)
	p.Trigger()
	p.Trigger()
	assert.EqualValues(t, 1, calls.Load(), "no second request while the first is pending")
	assert.Zero(t, clk.PendingCount(), "nothing armed before settlement")

	close(release)
	rec.wait(t)
	// the remembered trigger runs once after settlement
	rec.wait(t)
	assert.EqualValues(t, 2, calls.Load())
	assert.EqualValues(t, 1, maxInFlight.Load())
}

func TestPoller_FailureDoesNotStopSchedule(t *testing.T) {
	clk := clock.Fake(epoch)
	rec := newRecorder()
	boom := errors.New("boom")
	var calls atomic.Int32

	p := New(Config[int]{
		Interval: time.Second,
		Clock:    clk,
		Fetch: func(ctx context.Context) (int, error) {
			if calls.Add(1) == 1 {
				return 0, boom
			}
			return 7, nil
		},
		OnResult: rec.onResult,
	})
	p.Start(context.Background())
	defer p.Stop()

	rec.wait(t)
	clk.WaitForTimers(1)
	clk.Advance(time.Second)
	rec.wait(t)

	assert.Equal(t, []error{boom, nil}, rec.errs)
	assert.Equal(t, 7, rec.results[1])
}

func TestPoller_StopBeforeFirstResponse(t *testing.T) {
	clk := clock.Fake(epoch)
	rec := newRecorder()
	started := make(chan struct{})
	fetchDone := make(chan struct{})

	p := New(Config[int]{
		Interval: time.Second,
		Clock:    clk,
		Fetch: func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			defer close(fetchDone)
			return 0, ctx.Err()
		},
		OnResult: rec.onResult,
	})
	p.Start(context.Background())
	<-started

	p.Stop()
	<-fetchDone

	// give the fetch goroutine time to finish its bookkeeping
	time.Sleep(20 * time.Millisecond)
	clk.Advance(time.Minute)

	assert.Zero(t, rec.count(), "no delivery after stop")
	assert.Zero(t, clk.PendingCount(), "nothing rescheduled after stop")
	assert.False(t, p.Running())
}

func TestPoller_StopCancelsTimer(t *testing.T) {
	clk := clock.Fake(epoch)
	rec := newRecorder()
	var calls atomic.Int32

	p := New(Config[int]{
		Interval: time.Second,
		Clock:    clk,
		Fetch: func(ctx context.Context) (int, error) {
			return int(calls.Add(1)), nil
		},
		OnResult: rec.onResult,
	})
	p.Start(context.Background())
	rec.wait(t)
	clk.WaitForTimers(1)

	p.Stop()
	p.Stop()
	clk.Advance(time.Hour)

	assert.EqualValues(t, 1, calls.Load())
	p.Trigger()
	assert.EqualValues(t, 1, calls.Load(), "trigger on a stopped poller is ignored")
}

func TestPoller_TriggerWhileIdle(t *testing.T) {
	clk := clock.Fake(epoch)
	rec := newRecorder()
	var calls atomic.Int32

	p := New(Config[int]{
		Interval: time.Minute,
		Clock:    clk,
		Fetch: func(ctx context.Context) (int, error) {
			return int(calls.Add(1)), nil
		},
		OnResult: rec.onResult,
	})
	p.Start(context.Background())
	defer p.Stop()
	rec.wait(t)
	clk.WaitForTimers(1)

	p.Trigger()
	rec.wait(t)
	assert.EqualValues(t, 2, calls.Load())

	// the old timer was replaced, exactly one is armed
	clk.WaitForTimers(1)
	assert.Equal(t, 1, clk.PendingCount())
}

func TestPoller_Restart(t *testing.T) {
	clk := clock.Fake(epoch)
	rec := newRecorder()

	p := New(Config[int]{
		Clock:    clk,
		Fetch:    func(ctx context.Context) (int, error) { return 1, nil },
		OnResult: rec.onResult,
	})
	p.Start(context.Background())
	rec.wait(t)
	p.Stop()

	p.Start(context.Background())
	defer p.Stop()
	rec.wait(t)
	assert.Equal(t, 2, rec.count())
}

func TestPoller_RestartWhileFetchInFlight(t *testing.T) {
	clk := clock.Fake(epoch)
	rec := newRecorder()
	release := make(chan struct{})
	var calls atomic.Int32

	p := New(Config[int]{
		Interval: 5 * time.Second,
		Clock:    clk,
		Fetch: func(ctx context.Context) (int, error) {
			n := calls.Add(1)
			if n == 1 {
				// ignores cancellation, like a slow request that settles late
				<-release
			}
			return int(n), nil
		},
		OnResult: rec.onResult,
	})
	p.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	p.Stop()
	p.Start(context.Background())
	defer p.Stop()

	rec.wait(t)
	assert.EqualValues(t, 2, calls.Load())

	close(release)
	clk.WaitForTimers(1)
	clk.Advance(5 * time.Second)
	rec.wait(t)

	assert.True(t, p.Running())
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []int{2, 3}, rec.results)
}
