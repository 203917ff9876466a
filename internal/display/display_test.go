package display

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/segclock/internal/segment"
)

// recordingWriter captures frames instead of driving hardware.
type recordingWriter struct {
	frames []frame
	err    error
}

type frame struct {
	segments segment.Mask
	sel      segment.Mask
}

func (r *recordingWriter) WriteFrame(segments, sel segment.Mask) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, frame{segments, sel})
	return nil
}

func newTestMux(w FrameWriter) (*Mux, *[]time.Duration) {
	m := NewMux(w, DefaultHold)
	var sleeps []time.Duration
	m.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return m, &sleeps
}

func TestDecomposeRoundTrip(t *testing.T) {
	for value := 0; value <= 9999; value++ {
		d := Decompose(value)
		got := d[0]*1000 + d[1]*100 + d[2]*10 + d[3]
		if got != value {
			t.Fatalf("Decompose(%d) = %v, recomposes to %d", value, d, got)
		}
		for i, digit := range d {
			if digit < 0 || digit > 9 {
				t.Fatalf("Decompose(%d)[%d] = %d, out of range", value, i, digit)
			}
		}
	}
}

func TestDecomposeTruncatesHighDigits(t *testing.T) {
	cases := []struct {
		value int
		want  [4]int
	}{
		{12345, [4]int{2, 3, 4, 5}},
		{10000, [4]int{0, 0, 0, 0}},
		{99999, [4]int{9, 9, 9, 9}},
		{-7, [4]int{0, 0, 0, 0}},
	}
	for _, c := range cases {
		if got := Decompose(c.value); got != c.want {
			t.Errorf("Decompose(%d) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestRenderClockScenario(t *testing.T) {
	// Time 5:09 renders as 0509 with the decimal point on digit 1 (MM.SS).
	w := &recordingWriter{}
	m, sleeps := newTestMux(w)

	if err := m.Render(509, true, 1); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []frame{
		{segment.Encode(0, false), 0x01},
		{segment.Encode(5, true), 0x02},
		{segment.Encode(0, false), 0x04},
		{segment.Encode(9, false), 0x08},
	}
	if len(w.frames) != len(want) {
		t.Fatalf("wrote %d frames, want %d", len(w.frames), len(want))
	}
	for i, f := range want {
		if w.frames[i] != f {
			t.Errorf("frame %d = {%#02x %#02x}, want {%#02x %#02x}",
				i, w.frames[i].segments, w.frames[i].sel, f.segments, f.sel)
		}
	}

	if len(*sleeps) != 4 {
		t.Fatalf("slept %d times, want once per digit", len(*sleeps))
	}
	for i, d := range *sleeps {
		if d != DefaultHold {
			t.Errorf("hold %d = %v, want %v", i, d, DefaultHold)
		}
	}
}

func TestRenderVoltageScenario(t *testing.T) {
	// 2.750 V renders as 2750 with the decimal point on digit 0.
	w := &recordingWriter{}
	m, _ := newTestMux(w)

	if err := m.Render(2750, true, 0); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []frame{
		{segment.Encode(2, true), 0x01},
		{segment.Encode(7, false), 0x02},
		{segment.Encode(5, false), 0x04},
		{segment.Encode(0, false), 0x08},
	}
	for i, f := range want {
		if w.frames[i] != f {
			t.Errorf("frame %d = {%#02x %#02x}, want {%#02x %#02x}",
				i, w.frames[i].segments, w.frames[i].sel, f.segments, f.sel)
		}
	}
}

func TestRenderNoDecimal(t *testing.T) {
	w := &recordingWriter{}
	m, _ := newTestMux(w)

	if err := m.Render(1234, false, 1); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i, f := range w.frames {
		if f.segments&segment.DecimalPoint == 0 {
			t.Errorf("frame %d: decimal point lit without showDecimal", i)
		}
	}
}

func TestRenderPropagatesWriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("bus fault")}
	m, sleeps := newTestMux(w)

	if err := m.Render(42, false, 0); err == nil {
		t.Fatal("expected error from Render")
	}
	if len(*sleeps) != 0 {
		t.Errorf("slept %d times after failed write, want 0", len(*sleeps))
	}
}

func TestNewMuxDefaultHold(t *testing.T) {
	m := NewMux(&recordingWriter{}, 0)
	if m.hold != DefaultHold {
		t.Errorf("hold = %v, want %v", m.hold, DefaultHold)
	}
	m = NewMux(&recordingWriter{}, 4*time.Millisecond)
	if m.hold != 4*time.Millisecond {
		t.Errorf("hold = %v, want 4ms", m.hold)
	}
}
