// Package sim provides a desktop stand-in for the physical display: an
// ebiten window wired to a software model of the shift register pair.
// The render loop drives the same 16-pulse frames it would send to
// hardware; the window decodes whatever was latched and draws it.
package sim

import (
	"context"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sweeney/segclock/internal/segment"
	"github.com/sweeney/segclock/internal/shift"
)

// staleAfter blanks a digit position that has not been refreshed
// recently, mimicking a stalled multiplex scan going dark.
const staleAfter = 250 * time.Millisecond

// Display is an ebiten Game that mirrors the latched register outputs.
// Its Register is safe to drive from the render loop goroutine.
type Display struct {
	reg *shift.Register
	ctx context.Context

	mu      sync.Mutex
	masks   [segment.Positions]segment.Mask
	written [segment.Positions]time.Time

	resetKey bool
	modeKey  bool
	pot      float64
}

// New creates a Display fed by the given register model.
func New(ctx context.Context, reg *shift.Register) *Display {
	d := &Display{reg: reg, ctx: ctx, pot: 0.5}
	for i := range d.masks {
		d.masks[i] = 0xFF // all segments off (active-low)
	}
	return d
}

// Run opens the window and blocks until it is closed or the context is
// done. Must be called from the main goroutine.
func (d *Display) Run() error {
	ebiten.SetWindowTitle("segclock")
	ebiten.SetWindowSize(2*windowW, 2*windowH)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(d); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// Update drains frames latched since the last tick and applies them to
// the digit positions their select bits address.
func (d *Display) Update() error {
	if d.ctx.Err() != nil {
		return ebiten.Termination
	}

	d.pollKeys()

	frames := d.reg.TakeFrames()
	if len(frames) == 0 {
		return nil
	}
	now := time.Now()

	d.mu.Lock()
	for _, f := range frames {
		for pos := 0; pos < segment.Positions; pos++ {
			if f.Select&segment.Select(pos) != 0 {
				d.masks[pos] = f.Segments
				d.written[pos] = now
			}
		}
	}
	d.mu.Unlock()
	return nil
}

// potStep is how far one Update tick moves the simulated potentiometer
// while an arrow key is held (full sweep in about a second at 60 TPS).
const potStep = 1.0 / 60

// pollKeys samples the keyboard stand-ins for the physical inputs:
// R is the reset button, V the mode button, up/down turn the pot.
// Runs on the ebiten update goroutine; consumers read via Buttons/ADC.
func (d *Display) pollKeys() {
	reset := ebiten.IsKeyPressed(ebiten.KeyR)
	mode := ebiten.IsKeyPressed(ebiten.KeyV)
	up := ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	d.mu.Lock()
	d.resetKey = reset
	d.modeKey = mode
	if up {
		d.pot += potStep
	}
	if down {
		d.pot -= potStep
	}
	if d.pot > 1 {
		d.pot = 1
	}
	if d.pot < 0 {
		d.pot = 0
	}
	d.mu.Unlock()
}

// Buttons returns the keyboard-backed button inputs.
func (d *Display) Buttons() *KeyButtons {
	return &KeyButtons{d: d}
}

// ADC returns the keyboard-backed potentiometer.
func (d *Display) ADC() *KeyADC {
	return &KeyADC{d: d}
}

// KeyButtons implements hw.Buttons on top of the simulator keyboard.
type KeyButtons struct {
	d *Display
}

// Read returns the logical pressed states of the R and V keys.
func (k *KeyButtons) Read() (bool, bool, error) {
	k.d.mu.Lock()
	defer k.d.mu.Unlock()
	return k.d.resetKey, k.d.modeKey, nil
}

// Close is a no-op.
func (k *KeyButtons) Close() error { return nil }

// KeyADC implements hw.ADC on top of the simulator keyboard.
type KeyADC struct {
	d *Display
}

// Sample returns the simulated pot position, already normalized.
func (k *KeyADC) Sample() (float64, error) {
	k.d.mu.Lock()
	defer k.d.mu.Unlock()
	return k.d.pot, nil
}

// Close is a no-op.
func (k *KeyADC) Close() error { return nil }

// Window geometry (logical pixels).
const (
	windowW = 4*(digitW+digitGap) + digitGap
	windowH = digitH + 2*digitGap

	digitW   = 56
	digitH   = 96
	digitGap = 16
	segThick = 8
)

var (
	colorBG    = color.RGBA{0x10, 0x10, 0x10, 0xFF}
	colorLit   = color.RGBA{0xFF, 0x30, 0x20, 0xFF}
	colorUnlit = color.RGBA{0x28, 0x18, 0x16, 0xFF}
)

// digitMasks returns the mask to draw per position, blanking positions
// the scan has not refreshed recently.
func (d *Display) digitMasks(now time.Time) [segment.Positions]segment.Mask {
	d.mu.Lock()
	masks := d.masks
	written := d.written
	d.mu.Unlock()

	for pos := range masks {
		if written[pos].IsZero() || now.Sub(written[pos]) > staleAfter {
			masks[pos] = 0xFF // gone dark
		}
	}
	return masks
}

// Draw renders the four digit positions.
func (d *Display) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	masks := d.digitMasks(time.Now())
	for pos := 0; pos < segment.Positions; pos++ {
		x := float32(digitGap + pos*(digitW+digitGap))
		y := float32(digitGap)
		drawDigit(screen, x, y, masks[pos])
	}
}

// Layout reports the logical screen size.
func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowW, windowH
}

// drawDigit draws the seven segments plus decimal point at (x, y).
// Segment bits: 0=A (top), 1=B (top right), 2=C (bottom right),
// 3=D (bottom), 4=E (bottom left), 5=F (top left), 6=G (middle),
// 7=decimal point. A cleared bit lights the segment.
func drawDigit(screen *ebiten.Image, x, y float32, mask segment.Mask) {
	const (
		w = float32(digitW)
		h = float32(digitH)
		t = float32(segThick)
	)
	half := (h - 3*t) / 2

	segs := []struct {
		bit        uint
		sx, sy     float32
		sw, sh     float32
	}{
		{0, x + t, y, w - 2*t, t},                  // A
		{1, x + w - t, y + t, t, half},             // B
		{2, x + w - t, y + 2*t + half, t, half},    // C
		{3, x + t, y + h - t, w - 2*t, t},          // D
		{4, x, y + 2*t + half, t, half},            // E
		{5, x, y + t, t, half},                     // F
		{6, x + t, y + t + half, w - 2*t, t},       // G
	}

	for _, s := range segs {
		clr := color.Color(colorUnlit)
		if mask&(1<<s.bit) == 0 {
			clr = colorLit
		}
		vector.DrawFilledRect(screen, s.sx, s.sy, s.sw, s.sh, clr, false)
	}

	// Decimal point sits just right of the digit's lower corner.
	dp := color.Color(colorUnlit)
	if mask&segment.DecimalPoint == 0 {
		dp = colorLit
	}
	vector.DrawFilledRect(screen, x+w+2, y+h-t, t, t, dp, false)
}
