//go:build linux

package hw

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealLines drives the shift register control lines through the Linux
// GPIO character device.
type RealLines struct {
	chip  *gpiocdev.Chip
	data  *gpiocdev.Line
	clock *gpiocdev.Line
	latch *gpiocdev.Line
}

// NewRealLines requests the three control lines as outputs, all initially
// low (the shift register sees an idle bus).
func NewRealLines(pinData, pinClock, pinLatch int) (*RealLines, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	data, err := chip.RequestLine(pinData, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request data pin %d: %w", pinData, err)
	}
	clock, err := chip.RequestLine(pinClock, gpiocdev.AsOutput(0))
	if err != nil {
		data.Close()
		chip.Close()
		return nil, fmt.Errorf("request clock pin %d: %w", pinClock, err)
	}
	latch, err := chip.RequestLine(pinLatch, gpiocdev.AsOutput(0))
	if err != nil {
		clock.Close()
		data.Close()
		chip.Close()
		return nil, fmt.Errorf("request latch pin %d: %w", pinLatch, err)
	}

	return &RealLines{chip: chip, data: data, clock: clock, latch: latch}, nil
}

// SetData sets the serial data line level.
func (l *RealLines) SetData(high bool) error {
	if err := l.data.SetValue(levelValue(high)); err != nil {
		return fmt.Errorf("set data: %w", err)
	}
	return nil
}

// SetClock sets the shift clock line level.
func (l *RealLines) SetClock(high bool) error {
	if err := l.clock.SetValue(levelValue(high)); err != nil {
		return fmt.Errorf("set clock: %w", err)
	}
	return nil
}

// SetLatch sets the storage latch line level.
func (l *RealLines) SetLatch(high bool) error {
	if err := l.latch.SetValue(levelValue(high)); err != nil {
		return fmt.Errorf("set latch: %w", err)
	}
	return nil
}

// Close reconfigures the output lines back to inputs before releasing
// them, so the register floats to a known state on daemon restart.
func (l *RealLines) Close() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{l.data, l.clock, l.latch} {
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line: %w", err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealButtons reads the two push buttons through the Linux GPIO
// character device.
type RealButtons struct {
	chip  *gpiocdev.Chip
	reset *gpiocdev.Line
	mode  *gpiocdev.Line
}

// NewRealButtons requests the button lines as inputs with pull-up, the
// convention for switches that short to ground when pressed.
func NewRealButtons(pinReset, pinMode int) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	reset, err := chip.RequestLine(pinReset, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request reset pin %d: %w", pinReset, err)
	}
	mode, err := chip.RequestLine(pinMode, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		reset.Close()
		chip.Close()
		return nil, fmt.Errorf("request mode pin %d: %w", pinMode, err)
	}

	return &RealButtons{chip: chip, reset: reset, mode: mode}, nil
}

// Read returns the logical pressed states of the reset and mode buttons.
// Inverts raw GPIO: raw low = pressed.
func (b *RealButtons) Read() (bool, bool, error) {
	resetRaw, err := b.reset.Value()
	if err != nil {
		return false, false, fmt.Errorf("read reset pin: %w", err)
	}
	modeRaw, err := b.mode.Value()
	if err != nil {
		return false, false, fmt.Errorf("read mode pin: %w", err)
	}
	return resetRaw == 0, modeRaw == 0, nil
}

// Close releases the button lines.
func (b *RealButtons) Close() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{b.reset, b.mode} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// adcClockPeriod is the half-cycle time of the bit-banged ADC clock.
// The MCP3008 tolerates anything slower than ~1.4 MHz; the character
// device syscall overhead keeps us far below that anyway.
const adcClockPeriod = 2 * time.Microsecond

// RealADC bit-bangs an MCP3008 on four GPIO lines and reads channel 0.
type RealADC struct {
	chip *gpiocdev.Chip
	clk  *gpiocdev.Line
	cs   *gpiocdev.Line
	di   *gpiocdev.Line
	do   *gpiocdev.Line
}

// NewRealADC requests the ADC lines: clock and DI as outputs, chip
// select as output initially high (ADC held in reset), DO as input.
func NewRealADC(pinClock, pinCS, pinDI, pinDO int) (*RealADC, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	clk, err := chip.RequestLine(pinClock, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request adc clock pin %d: %w", pinClock, err)
	}
	cs, err := chip.RequestLine(pinCS, gpiocdev.AsOutput(1))
	if err != nil {
		clk.Close()
		chip.Close()
		return nil, fmt.Errorf("request adc cs pin %d: %w", pinCS, err)
	}
	di, err := chip.RequestLine(pinDI, gpiocdev.AsOutput(0))
	if err != nil {
		cs.Close()
		clk.Close()
		chip.Close()
		return nil, fmt.Errorf("request adc di pin %d: %w", pinDI, err)
	}
	do, err := chip.RequestLine(pinDO, gpiocdev.AsInput)
	if err != nil {
		di.Close()
		cs.Close()
		clk.Close()
		chip.Close()
		return nil, fmt.Errorf("request adc do pin %d: %w", pinDO, err)
	}

	return &RealADC{chip: chip, clk: clk, cs: cs, di: di, do: do}, nil
}

// Sample reads channel 0 and returns the 10-bit result normalized to
// [0.0, 1.0].
func (a *RealADC) Sample() (float64, error) {
	// Select the ADC: CS low with the clock idle low.
	if err := a.cs.SetValue(0); err != nil {
		return 0, fmt.Errorf("select adc: %w", err)
	}

	// Start bit, single-ended mode, then three channel bits (channel 0).
	for _, bit := range []int{1, 1, 0, 0, 0} {
		if err := a.clockOut(bit); err != nil {
			a.cs.SetValue(1)
			return 0, err
		}
	}

	// One null bit while the mux settles, then 10 data bits MSB-first.
	if _, err := a.clockIn(); err != nil {
		a.cs.SetValue(1)
		return 0, err
	}
	var raw uint16
	for i := 0; i < 10; i++ {
		bit, err := a.clockIn()
		if err != nil {
			a.cs.SetValue(1)
			return 0, err
		}
		raw = raw<<1 | uint16(bit)
	}

	if err := a.cs.SetValue(1); err != nil {
		return 0, fmt.Errorf("deselect adc: %w", err)
	}
	return float64(raw) / 1023.0, nil
}

// clockOut shifts one control bit into the ADC. The ADC samples DI on
// the rising clock edge.
func (a *RealADC) clockOut(bit int) error {
	if err := a.di.SetValue(bit); err != nil {
		return fmt.Errorf("set adc di: %w", err)
	}
	time.Sleep(adcClockPeriod)
	if err := a.clk.SetValue(1); err != nil {
		return fmt.Errorf("adc clock high: %w", err)
	}
	time.Sleep(adcClockPeriod)
	if err := a.clk.SetValue(0); err != nil {
		return fmt.Errorf("adc clock low: %w", err)
	}
	return nil
}

// clockIn shifts one data bit out of the ADC. The ADC drives DO on the
// falling clock edge.
func (a *RealADC) clockIn() (int, error) {
	if err := a.clk.SetValue(1); err != nil {
		return 0, fmt.Errorf("adc clock high: %w", err)
	}
	time.Sleep(adcClockPeriod)
	if err := a.clk.SetValue(0); err != nil {
		return 0, fmt.Errorf("adc clock low: %w", err)
	}
	time.Sleep(adcClockPeriod)
	bit, err := a.do.Value()
	if err != nil {
		return 0, fmt.Errorf("read adc do: %w", err)
	}
	return bit, nil
}

// Close deselects the ADC and releases its lines.
func (a *RealADC) Close() error {
	var errs []error
	if a.cs != nil {
		if err := a.cs.SetValue(1); err != nil {
			errs = append(errs, fmt.Errorf("deselect adc: %w", err))
		}
	}
	for _, line := range []*gpiocdev.Line{a.clk, a.cs, a.di, a.do} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if a.chip != nil {
		if err := a.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func levelValue(high bool) int {
	if high {
		return 1
	}
	return 0
}
