package core

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Mod returns x modulo n in the range [0, n), also for negative x.
// Encoder positions are signed, menus and alphabets are not.
func Mod(x, n int) int {
	if n <= 0 {
		return 0
	}
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
