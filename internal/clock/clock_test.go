package clock

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTickLaw(t *testing.T) {
	// After N ticks: seconds = N mod 60, minutes = (N / 60) mod 100.
	cases := []int{0, 1, 59, 60, 61, 119, 120, 3599, 3600, 6000, 5999, 100 * 60, 100*60 + 1}
	for _, n := range cases {
		var c Counter
		for i := 0; i < n; i++ {
			c.Tick()
		}
		sec, min := c.Snapshot()
		if sec != n%60 || min != (n/60)%100 {
			t.Errorf("after %d ticks: (%d, %d), want (%d, %d)",
				n, sec, min, n%60, (n/60)%100)
		}
	}
}

func TestSixtyTicksIsOneMinute(t *testing.T) {
	var c Counter
	for i := 0; i < 60; i++ {
		c.Tick()
	}
	sec, min := c.Snapshot()
	if sec != 0 || min != 1 {
		t.Errorf("after 60 ticks: (%d, %d), want (0, 1)", sec, min)
	}
}

func TestMinutesWrapAtOneHundred(t *testing.T) {
	var c Counter
	for i := 0; i < 100*60; i++ {
		c.Tick()
	}
	sec, min := c.Snapshot()
	if sec != 0 || min != 0 {
		t.Errorf("after 100 minutes: (%d, %d), want (0, 0)", sec, min)
	}
}

func TestResetFromAnyState(t *testing.T) {
	for _, n := range []int{0, 1, 59, 61, 5999} {
		var c Counter
		for i := 0; i < n; i++ {
			c.Tick()
		}
		c.Reset()
		sec, min := c.Snapshot()
		if sec != 0 || min != 0 {
			t.Errorf("reset after %d ticks: (%d, %d), want (0, 0)", n, sec, min)
		}
	}
}

func TestDisplayValue(t *testing.T) {
	cases := []struct {
		sec, min, want int
	}{
		{0, 0, 0},
		{9, 5, 509},
		{59, 99, 9959},
		{1, 0, 1},
		{0, 10, 1000},
	}
	for _, c := range cases {
		if got := DisplayValue(c.sec, c.min); got != c.want {
			t.Errorf("DisplayValue(%d, %d) = %d, want %d", c.sec, c.min, got, c.want)
		}
	}
}

func TestSnapshotNeverTorn(t *testing.T) {
	// Hammer ticks from one goroutine while reading from another; a
	// snapshot must always satisfy the field invariants even mid-rollover.
	var c Counter
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				c.Tick()
			}
		}
	}()

	for i := 0; i < 100000; i++ {
		sec, min := c.Snapshot()
		if sec < 0 || sec >= 60 {
			t.Fatalf("torn read: seconds = %d", sec)
		}
		if min < 0 || min >= 100 {
			t.Fatalf("torn read: minutes = %d", min)
		}
	}
	close(done)
	wg.Wait()
}

func TestRunStopsOnContextCancel(t *testing.T) {
	var c Counter
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Run(ctx, &c, time.Millisecond)
		close(done)
	}()

	// Wait for at least one tick to land.
	deadline := time.After(time.Second)
	for {
		if sec, min := c.Snapshot(); sec > 0 || min > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("no tick observed within a second")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
