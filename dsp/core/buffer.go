package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// PadZeros returns data right-padded with zeros to length n.
// If data is already at least n samples long it is returned unchanged.
func PadZeros(data []float64, n int) []float64 {
	if len(data) >= n {
		return data
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}
