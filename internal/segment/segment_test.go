package segment

import "testing"

func TestEncodeGolden(t *testing.T) {
	// Expected masks are the complements of the standard active-high
	// segment table for a common anode display.
	want := [10]Mask{0xC0, 0xF9, 0xA4, 0xB0, 0x99, 0x92, 0x82, 0xF8, 0x80, 0x90}

	for digit := 0; digit <= 9; digit++ {
		got := Encode(digit, false)
		if got != want[digit] {
			t.Errorf("Encode(%d, false) = %#02x, want %#02x", digit, got, want[digit])
		}
	}
}

func TestEncodeDecimalPoint(t *testing.T) {
	for digit := 0; digit <= 9; digit++ {
		plain := Encode(digit, false)
		withDP := Encode(digit, true)

		if withDP != plain&^DecimalPoint {
			t.Errorf("Encode(%d, true) = %#02x, want %#02x with decimal bit cleared",
				digit, withDP, plain&^DecimalPoint)
		}
		if withDP&DecimalPoint != 0 {
			t.Errorf("Encode(%d, true) = %#02x: decimal point bit still set", digit, withDP)
		}
		if plain&DecimalPoint == 0 {
			t.Errorf("Encode(%d, false) = %#02x: decimal point lit without request", digit, plain)
		}
	}
}

func TestEncodePanicsOutOfRange(t *testing.T) {
	for _, digit := range []int{-1, 10, 255} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Encode(%d, false) did not panic", digit)
				}
			}()
			Encode(digit, false)
		}()
	}
}

func TestSelectOneHot(t *testing.T) {
	want := [Positions]Mask{0x01, 0x02, 0x04, 0x08}
	for pos := 0; pos < Positions; pos++ {
		if got := Select(pos); got != want[pos] {
			t.Errorf("Select(%d) = %#02x, want %#02x", pos, got, want[pos])
		}
	}
}

func TestSelectPanicsOutOfRange(t *testing.T) {
	for _, pos := range []int{-1, 4} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Select(%d) did not panic", pos)
				}
			}()
			Select(pos)
		}()
	}
}
