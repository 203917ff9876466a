// Package shift implements the serial protocol for the display's
// cascaded shift register pair: two bytes clocked out MSB-first on the
// data line and committed to the parallel outputs with a single latch
// pulse.
package shift

import (
	"fmt"

	"github.com/sweeney/segclock/internal/hw"
	"github.com/sweeney/segclock/internal/segment"
)

// Writer bit-bangs frames onto the control lines.
type Writer struct {
	lines hw.Lines
}

// NewWriter creates a Writer driving the given lines.
func NewWriter(lines hw.Lines) *Writer {
	return &Writer{lines: lines}
}

// WriteFrame sends one display frame: the segment byte, then the digit
// select byte, then a single latch pulse committing both at once.
// The latch stays low for the whole 16-pulse span, so the previous frame
// remains on the parallel outputs until the new one is complete.
func (w *Writer) WriteFrame(segments, sel segment.Mask) error {
	if err := w.lines.SetLatch(false); err != nil {
		return fmt.Errorf("lower latch: %w", err)
	}
	if err := w.shiftOut(byte(segments)); err != nil {
		return fmt.Errorf("shift segments: %w", err)
	}
	if err := w.shiftOut(byte(sel)); err != nil {
		return fmt.Errorf("shift select: %w", err)
	}
	if err := w.lines.SetLatch(true); err != nil {
		return fmt.Errorf("raise latch: %w", err)
	}
	return nil
}

// shiftOut clocks one byte out MSB-first. The data line is set before
// the rising clock edge, which is when the register samples it.
func (w *Writer) shiftOut(b byte) error {
	for i := 7; i >= 0; i-- {
		if err := w.lines.SetData(b>>uint(i)&1 == 1); err != nil {
			return fmt.Errorf("set data bit %d: %w", i, err)
		}
		if err := w.lines.SetClock(true); err != nil {
			return fmt.Errorf("clock high: %w", err)
		}
		if err := w.lines.SetClock(false); err != nil {
			return fmt.Errorf("clock low: %w", err)
		}
	}
	return nil
}
