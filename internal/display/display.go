// Package display multiplexes a 4-digit value onto the 7-segment display.
// Only one digit is physically lit at a time; cycling through all four
// fast enough makes them appear simultaneously lit.
package display

import (
	"fmt"
	"time"

	"github.com/sweeney/segclock/internal/segment"
)

// DefaultHold is the per-digit settle time. Four digits at 2 ms keeps a
// full cycle at 8 ms, well under the ~16 ms flicker-fusion target.
// Longer holds dim the display into a visible scan; shorter ones starve
// each digit of on-time.
const DefaultHold = 2 * time.Millisecond

// FrameWriter sends one segments/select frame to the hardware.
type FrameWriter interface {
	WriteFrame(segments, sel segment.Mask) error
}

// Mux drives one multiplex cycle per Render call.
type Mux struct {
	writer FrameWriter
	hold   time.Duration
	sleep  func(time.Duration)
}

// NewMux creates a Mux with the given per-digit hold time.
// hold <= 0 selects DefaultHold.
func NewMux(w FrameWriter, hold time.Duration) *Mux {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Mux{writer: w, hold: hold, sleep: time.Sleep}
}

// Render drives one full 4-digit cycle for value, left to right, holding
// each digit for the settle time. When showDecimal, the decimal point is
// lit on the digit at decimalPos (0 = leftmost).
//
// Values above 9999 silently lose their high-order digits; negative
// values render as 0. Render holds no state between calls — the caller
// loops it once per frame.
func (m *Mux) Render(value int, showDecimal bool, decimalPos int) error {
	digits := Decompose(value)
	for i, d := range digits {
		segs := segment.Encode(d, showDecimal && i == decimalPos)
		if err := m.writer.WriteFrame(segs, segment.Select(i)); err != nil {
			return fmt.Errorf("write digit %d: %w", i, err)
		}
		m.sleep(m.hold)
	}
	return nil
}

// Decompose splits value into its four base-10 digits, thousands first,
// each masked to 0..9.
func Decompose(value int) [segment.Positions]int {
	if value < 0 {
		value = 0
	}
	return [segment.Positions]int{
		(value / 1000) % 10,
		(value / 100) % 10,
		(value / 10) % 10,
		value % 10,
	}
}
