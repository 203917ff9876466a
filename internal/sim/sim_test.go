package sim

import (
	"context"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sweeney/segclock/internal/segment"
	"github.com/sweeney/segclock/internal/shift"
)

func TestUpdateAppliesLatchedFrames(t *testing.T) {
	reg := shift.NewRegister()
	w := shift.NewWriter(reg)
	d := New(context.Background(), reg)

	// One full multiplex cycle for "0509" with the point on digit 1.
	digits := []int{0, 5, 0, 9}
	for i, dig := range digits {
		if err := w.WriteFrame(segment.Encode(dig, i == 1), segment.Select(i)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	if err := d.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	masks := d.digitMasks(time.Now())
	want := [segment.Positions]segment.Mask{
		segment.Encode(0, false),
		segment.Encode(5, true),
		segment.Encode(0, false),
		segment.Encode(9, false),
	}
	if masks != want {
		t.Errorf("masks = %#v, want %#v", masks, want)
	}
}

func TestStalePositionsGoDark(t *testing.T) {
	reg := shift.NewRegister()
	w := shift.NewWriter(reg)
	d := New(context.Background(), reg)

	if err := w.WriteFrame(segment.Encode(8, false), segment.Select(0)); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := d.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	fresh := d.digitMasks(time.Now())
	if fresh[0] != segment.Encode(8, false) {
		t.Errorf("fresh mask = %#02x", fresh[0])
	}

	stale := d.digitMasks(time.Now().Add(time.Second))
	if stale[0] != 0xFF {
		t.Errorf("stale mask = %#02x, want all off", stale[0])
	}
	// Never-written positions stay dark.
	if stale[3] != 0xFF {
		t.Errorf("unwritten mask = %#02x, want all off", stale[3])
	}
}

func TestUpdateTerminatesOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := New(ctx, shift.NewRegister())

	cancel()
	if err := d.Update(); err != ebiten.Termination {
		t.Errorf("Update = %v, want ebiten.Termination", err)
	}
}

func TestNewStartsDark(t *testing.T) {
	d := New(context.Background(), shift.NewRegister())
	masks := d.digitMasks(time.Now())
	for pos, m := range masks {
		if m != 0xFF {
			t.Errorf("position %d starts at %#02x, want all off", pos, m)
		}
	}
}
