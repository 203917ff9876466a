package shift

import (
	"sync"

	"github.com/sweeney/segclock/internal/segment"
)

// Frame is one committed pair of register outputs.
type Frame struct {
	Segments segment.Mask
	Select   segment.Mask
}

// Register models the far end of the lines: two cascaded 8-bit shift
// registers. It implements hw.Lines, samples the data line on each
// rising clock edge, and commits the 16 most recently shifted bits on
// the rising latch edge (segment byte in the high half, since it is
// shifted first and pushed through to the second register).
//
// Safe for concurrent use: the simulator reads committed frames from a
// different goroutine than the render loop that shifts bits in.
type Register struct {
	mu     sync.Mutex
	data   bool
	clock  bool
	latch  bool
	bits   uint32
	frames []Frame
	latest Frame
	lit    bool
}

// NewRegister creates a Register with empty outputs.
func NewRegister() *Register {
	return &Register{latch: true}
}

// SetData latches the data line level.
func (r *Register) SetData(high bool) error {
	r.mu.Lock()
	r.data = high
	r.mu.Unlock()
	return nil
}

// SetClock shifts the data line in on the rising edge.
func (r *Register) SetClock(high bool) error {
	r.mu.Lock()
	if high && !r.clock {
		r.bits <<= 1
		if r.data {
			r.bits |= 1
		}
	}
	r.clock = high
	r.mu.Unlock()
	return nil
}

// SetLatch commits the shifted bits to the outputs on the rising edge.
func (r *Register) SetLatch(high bool) error {
	r.mu.Lock()
	if high && !r.latch {
		r.latest = Frame{
			Segments: segment.Mask(r.bits >> 8),
			Select:   segment.Mask(r.bits),
		}
		r.frames = append(r.frames, r.latest)
		r.lit = true
	}
	r.latch = high
	r.mu.Unlock()
	return nil
}

// Close is a no-op; the register holds no resources.
func (r *Register) Close() error {
	return nil
}

// Frames returns a copy of all committed frames in order.
func (r *Register) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Latest returns the most recently committed frame, if any.
func (r *Register) Latest() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest, r.lit
}

// TakeFrames returns all committed frames and clears the trace.
// The latest frame remains visible to Latest.
func (r *Register) TakeFrames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.frames
	r.frames = nil
	return out
}
