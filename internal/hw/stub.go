//go:build !linux

package hw

import "errors"

var errUnsupported = errors.New("hw: not supported on this platform (requires Linux)")

// RealLines is not available on non-Linux platforms.
type RealLines struct{}

// NewRealLines returns an error on non-Linux platforms.
func NewRealLines(pinData, pinClock, pinLatch int) (*RealLines, error) {
	return nil, errUnsupported
}

func (l *RealLines) SetData(high bool) error  { return errUnsupported }
func (l *RealLines) SetClock(high bool) error { return errUnsupported }
func (l *RealLines) SetLatch(high bool) error { return errUnsupported }
func (l *RealLines) Close() error             { return nil }

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(pinReset, pinMode int) (*RealButtons, error) {
	return nil, errUnsupported
}

func (b *RealButtons) Read() (bool, bool, error) { return false, false, errUnsupported }
func (b *RealButtons) Close() error              { return nil }

// RealADC is not available on non-Linux platforms.
type RealADC struct{}

// NewRealADC returns an error on non-Linux platforms.
func NewRealADC(pinClock, pinCS, pinDI, pinDO int) (*RealADC, error) {
	return nil, errUnsupported
}

func (a *RealADC) Sample() (float64, error) { return 0, errUnsupported }
func (a *RealADC) Close() error             { return nil }
