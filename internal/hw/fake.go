package hw

import "errors"

// LineID identifies one of the three output lines.
type LineID int

// Output line identifiers.
const (
	LineData LineID = iota
	LineClock
	LineLatch
)

// String returns the line name for test failure messages.
func (id LineID) String() string {
	switch id {
	case LineData:
		return "DATA"
	case LineClock:
		return "CLOCK"
	case LineLatch:
		return "LATCH"
	}
	return "UNKNOWN"
}

// LineEvent records a single level write to an output line.
type LineEvent struct {
	Line LineID
	High bool
}

// FakeLines records every level written to the control lines so tests
// can assert the exact pulse sequence.
type FakeLines struct {
	// Events contains all writes in order.
	Events []LineEvent

	// SetError, if set, will be returned by every Set call.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeLines creates an empty FakeLines.
func NewFakeLines() *FakeLines {
	return &FakeLines{}
}

// SetData records a data line write.
func (f *FakeLines) SetData(high bool) error {
	return f.record(LineData, high)
}

// SetClock records a clock line write.
func (f *FakeLines) SetClock(high bool) error {
	return f.record(LineClock, high)
}

// SetLatch records a latch line write.
func (f *FakeLines) SetLatch(high bool) error {
	return f.record(LineLatch, high)
}

func (f *FakeLines) record(line LineID, high bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Events = append(f.Events, LineEvent{Line: line, High: high})
	return nil
}

// Close marks the lines as closed.
func (f *FakeLines) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded events.
func (f *FakeLines) Reset() {
	f.Events = nil
	f.Closed = false
	f.SetError = nil
}

// ButtonSample represents a single poll of both buttons (logical form).
type ButtonSample struct {
	Reset bool // true = pressed
	Mode  bool // true = pressed
}

// FakeButtons is a test double that returns scripted button states.
type FakeButtons struct {
	// Samples contains scripted (reset, mode) values to return.
	// Each call to Read() consumes the next sample.
	Samples []ButtonSample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeButtons creates a FakeButtons with the given samples.
func NewFakeButtons(samples []ButtonSample) *FakeButtons {
	return &FakeButtons{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeButtons) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample.Reset, sample.Mode, nil
}

// Close marks the buttons as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// FakeADC is a test double that returns scripted normalized readings.
type FakeADC struct {
	// Readings contains scripted normalized values to return.
	Readings []float64

	index int

	// Closed tracks if Close was called
	Closed bool

	// SampleError, if set, will be returned by Sample()
	SampleError error
}

// NewFakeADC creates a FakeADC with the given readings.
func NewFakeADC(readings []float64) *FakeADC {
	return &FakeADC{Readings: readings}
}

// Sample returns the next scripted reading.
// If readings are exhausted, returns the last one repeatedly.
func (f *FakeADC) Sample() (float64, error) {
	if f.SampleError != nil {
		return 0, f.SampleError
	}
	if len(f.Readings) == 0 {
		return 0, errors.New("no readings configured")
	}

	r := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}
	return r, nil
}

// Close marks the ADC as closed.
func (f *FakeADC) Close() error {
	f.Closed = true
	return nil
}
