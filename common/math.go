package common

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// InRange reports whether lo <= v <= hi.
func InRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
