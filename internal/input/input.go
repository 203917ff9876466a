// Package input turns raw button levels and ADC readings into the values
// the render loop acts on. It has no hardware dependencies; time is
// always injected via time.Time parameters.
package input

import (
	"math"
	"time"
)

// VoltsScale is the ADC reference voltage: a full-scale reading is 3.3 V.
const VoltsScale = 3.3

// Sample is one poll of the buttons (logical pressed states).
type Sample struct {
	Reset bool
	Mode  bool
	Time  time.Time
}

// Action is what the render loop should do with a sample.
type Action struct {
	// ResetEdge is true when the reset button transitioned to pressed.
	ResetEdge bool
	// VoltsMode is true while the mode button is held: render the
	// potentiometer voltage instead of the clock.
	VoltsMode bool
}

// Detector edge-detects the reset button and level-reads the mode
// button. After a reset edge fires, further reset activity is ignored
// for the debounce hold, absorbing contact bounce.
type Detector struct {
	debounce  time.Duration
	lastReset bool
	holdUntil time.Time
}

// NewDetector creates a Detector with the given debounce hold.
func NewDetector(debounce time.Duration) *Detector {
	return &Detector{debounce: debounce}
}

// Process consumes one sample and returns the resulting action.
func (d *Detector) Process(s Sample) Action {
	a := Action{VoltsMode: s.Mode}

	if s.Time.Before(d.holdUntil) {
		d.lastReset = s.Reset
		return a
	}

	if s.Reset && !d.lastReset {
		a.ResetEdge = true
		d.holdUntil = s.Time.Add(d.debounce)
	}
	d.lastReset = s.Reset
	return a
}

// Volts converts a normalized ADC reading to volts.
func Volts(normalized float64) float64 {
	return normalized * VoltsScale
}

// DisplayMillivolts converts a normalized reading to the integer shown
// in voltage mode, rounded to the nearest millivolt: 2.75 V becomes 2750,
// rendered as 2.750 with the decimal point at position 0.
func DisplayMillivolts(normalized float64) int {
	return int(math.Round(Volts(normalized) * 1000))
}
