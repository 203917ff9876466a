// Package hw provides GPIO access for the display control lines, the two
// push buttons, and the serial ADC, with hardware abstraction.
// The real implementations use the Linux GPIO character device.
// The fakes allow testing without hardware.
package hw

// Lines drives the three shift register control lines.
// Only the main render path may touch these; the tick path never does.
type Lines interface {
	// SetData sets the serial data line level.
	SetData(high bool) error

	// SetClock sets the shift clock line level.
	SetClock(high bool) error

	// SetLatch sets the storage latch line level.
	SetLatch(high bool) error

	// Close releases GPIO resources.
	Close() error
}

// Buttons reads the push buttons.
// The raw GPIO values are inverted (pull-up, active-low): raw low =
// logical pressed. Implementations return logical states.
type Buttons interface {
	// Read returns (resetPressed, modePressed, error).
	Read() (bool, bool, error)

	// Close releases GPIO resources.
	Close() error
}

// ADC samples the potentiometer channel.
type ADC interface {
	// Sample returns a reading normalized to [0.0, 1.0] of full scale.
	Sample() (float64, error)

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering).
const (
	DefaultPinData  = 17 // DS, serial data into the shift register
	DefaultPinClock = 27 // SH_CP, shift clock
	DefaultPinLatch = 22 // ST_CP, storage latch

	DefaultPinReset = 26 // S1, resets the timer
	DefaultPinMode  = 16 // S3, shows the potentiometer voltage while held

	DefaultPinADCClock = 18
	DefaultPinADCCS    = 25
	DefaultPinADCDI    = 24
	DefaultPinADCDO    = 23
)
