package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClock_NowAdvances(t *testing.T) {
	c := Fake(epoch)
	assert.True(t, c.Now().Equal(epoch))
	c.Advance(5 * time.Second)
	assert.True(t, c.Now().Equal(epoch.Add(5*time.Second)))
}

func TestFakeClock_AfterFuncFiresAtDeadline(t *testing.T) {
	c := Fake(epoch)
	fired := 0
	c.AfterFunc(3*time.Second, func() { fired++ })

	c.Advance(2 * time.Second)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, c.PendingCount())

	c.Advance(time.Second)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, c.PendingCount())

	c.Advance(time.Hour)
	assert.Equal(t, 1, fired, "one-shot")
}

func TestFakeClock_StopPreventsFiring(t *testing.T) {
	c := Fake(epoch)
	fired := false
	tm := c.AfterFunc(time.Second, func() { fired = true })

	require.True(t, tm.Stop())
	assert.False(t, tm.Stop(), "second stop reports inactive")

	c.Advance(time.Minute)
	assert.False(t, fired)
	assert.Equal(t, 0, c.PendingCount())
}

func TestFakeClock_DeadlineOrderAndRearm(t *testing.T) {
	c := Fake(epoch)
	var order []string
	c.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	c.AfterFunc(time.Second, func() {
		order = append(order, "a")
		c.AfterFunc(500*time.Millisecond, func() { order = append(order, "a2") })
	})

	c.Advance(3 * time.Second)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, c.PendingCount(), "re-armed relative to the advanced time")

	c.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "a2"}, order)
}

func TestFakeClock_ZeroDurationRunsImmediately(t *testing.T) {
	c := Fake(epoch)
	fired := false
	c.AfterFunc(0, func() { fired = true })
	assert.True(t, fired)
}

func TestFakeClock_WaitForTimers(t *testing.T) {
	c := Fake(epoch)
	done := make(chan struct{})
	go func() {
		c.AfterFunc(time.Second, func() { close(done) })
	}()

	c.WaitForTimers(1)
	c.Advance(time.Second)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}
}
