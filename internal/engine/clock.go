package engine

import (
	"sync"
	"time"
)

// Clock runs a callback at a fixed interval on its own goroutine.
//
// It is timer-driven, not sample-accurate: the callback fires on the
// wall clock, so drift accumulates under system load. That matches the
// sequencer's step granularity, which tolerates a few milliseconds of
// jitter per tick.
type Clock struct {
	mu     sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
}

// Schedule starts firing fn every interval. Any previously scheduled
// callback is cancelled first.
func (c *Clock) Schedule(interval time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	c.ticker = ticker
	c.done = done

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
}

// Cancel stops the periodic callback. A tick already in flight may
// still complete; no further ticks fire after Cancel returns.
func (c *Clock) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *Clock) cancelLocked() {
	if c.ticker != nil {
		c.ticker.Stop()
		close(c.done)
		c.ticker = nil
		c.done = nil
	}
}

// StepInterval returns the duration of one sixteenth-note step at the
// given tempo: (60 / BPM) seconds per beat, four steps per beat.
func StepInterval(bpm int) time.Duration {
	return time.Duration(60.0 / float64(bpm) * 1000 / 4 * float64(time.Millisecond))
}
