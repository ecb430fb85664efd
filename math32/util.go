package math32

// Min returns the minimum of two values.
func Min[T float32 | int32](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two values.
func Max[T float32 | int32](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of a float32.
func Abs(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}

// Clamp clamps a value to the range [lo, hi].
func Clamp(a, lo, hi float32) float32 {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}
