// Package segment maps decimal digits to 7-segment patterns for a common
// anode display driven through a shift register. Patterns are active-low:
// a 0 bit lights the segment.
package segment

import "fmt"

// Mask is an 8-bit segment enable mask. Bit 7 is the decimal point,
// bits 0-6 are segments A-G in the usual assignment.
type Mask uint8

// DecimalPoint is the decimal point bit within a Mask. Active-low like
// the rest of the segments.
const DecimalPoint Mask = 0x80

// Positions is the number of digit positions on the display.
const Positions = 4

// digitPatterns holds the active-low patterns for digits 0-9, stored as
// complements of the standard active-high segment table.
var digitPatterns = [10]Mask{
	^Mask(0x3F), // 0: A-F
	^Mask(0x06), // 1: B, C
	^Mask(0x5B), // 2: A, B, D, E, G
	^Mask(0x4F), // 3: A, B, C, D, G
	^Mask(0x66), // 4: B, C, F, G
	^Mask(0x6D), // 5: A, C, D, F, G
	^Mask(0x7D), // 6: A, C, D, E, F, G
	^Mask(0x07), // 7: A, B, C
	^Mask(0x7F), // 8: all
	^Mask(0x6F), // 9: A, B, C, D, F, G
}

// digitSelects holds the one-hot position masks, left to right. Unlike
// the segment patterns these are active-high on the second register.
var digitSelects = [Positions]Mask{0x01, 0x02, 0x04, 0x08}

// Encode returns the segment pattern for digit. When decimalOn, the
// decimal point bit is additionally cleared (point lit) regardless of
// digit value.
//
// A digit outside 0..9 is a bug in the caller, not bad input; Encode
// panics rather than clamping so the bug surfaces where it happened.
func Encode(digit int, decimalOn bool) Mask {
	if digit < 0 || digit > 9 {
		panic(fmt.Sprintf("segment: digit %d out of range 0..9", digit))
	}
	m := digitPatterns[digit]
	if decimalOn {
		m &^= DecimalPoint
	}
	return m
}

// Select returns the one-hot mask that activates digit position pos
// (0 = leftmost). Panics if pos is outside 0..3.
func Select(pos int) Mask {
	if pos < 0 || pos >= Positions {
		panic(fmt.Sprintf("segment: position %d out of range 0..%d", pos, Positions-1))
	}
	return digitSelects[pos]
}
