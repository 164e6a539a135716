package core

import "testing"

func TestMod(t *testing.T) {
	tests := []struct {
		x, n, expected int
	}{
		{0, 3, 0},
		{4, 3, 1},
		{-1, 3, 2},  // one detent counter-clockwise from the first item
		{-3, 3, 0},
		{-27, 26, 25},
		{5, 0, 0}, // degenerate modulus
	}

	for _, tc := range tests {
		result := Mod(tc.x, tc.n)
		if result != tc.expected {
			t.Errorf("Mod(%d, %d) = %d, expected %d", tc.x, tc.n, result, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs should return the magnitude")
	}
	if AbsF(-2.5) != 2.5 || AbsF(2.5) != 2.5 {
		t.Error("AbsF should return the magnitude")
	}
}

func TestRGBBoost(t *testing.T) {
	if got := ColorMenu.Boost(); got != (RGB{0, 0, 255}) {
		t.Errorf("Boost() = %v, expected pure blue", got)
	}
	if got := ColorRound.Boost(); got != (RGB{255, 255, 0}) {
		t.Errorf("Boost() = %v, expected yellow", got)
	}
	if got := ColorOff.Boost(); got != ColorOff {
		t.Errorf("Boost() of black = %v, expected black", got)
	}
	if got := ColorSuccess.Hex(); got != "#00ff00" {
		t.Errorf("Hex() = %q, expected #00ff00", got)
	}
}
