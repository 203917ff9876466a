// Package clock tracks elapsed time as a seconds/minutes pair updated by
// a periodic tick.
package clock

import (
	"context"
	"sync/atomic"
	"time"
)

// Counter is the elapsed-time state: seconds in [0,60), minutes in
// [0,100), both zero at start. Tick runs on its own goroutine while the
// render loop reads, so both fields are packed into one atomic word
// (minutes<<8 | seconds). Snapshot is a single load and can never
// observe a torn pair across a minute rollover.
//
// The zero value is ready to use.
type Counter struct {
	state atomic.Uint32
}

// Tick advances the counter by one second. Seconds wrap at 60 into a
// minute; minutes wrap silently at 100.
func (c *Counter) Tick() {
	for {
		old := c.state.Load()
		sec := old & 0xFF
		min := old >> 8
		sec++
		if sec >= 60 {
			sec = 0
			min++
			if min >= 100 {
				min = 0
			}
		}
		if c.state.CompareAndSwap(old, min<<8|sec) {
			return
		}
	}
}

// Reset zeroes both counters unconditionally.
func (c *Counter) Reset() {
	c.state.Store(0)
}

// Snapshot returns the current (seconds, minutes) pair.
func (c *Counter) Snapshot() (seconds, minutes int) {
	s := c.state.Load()
	return int(s & 0xFF), int(s >> 8)
}

// DisplayValue returns the MMSS integer shown in clock mode.
func DisplayValue(seconds, minutes int) int {
	return minutes*100 + seconds
}

// Run ticks the counter once per interval until ctx is done. It does
// nothing but advance the counter; it owns no I/O.
func Run(ctx context.Context, c *Counter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
