package fft

import "math"

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// Forward computes the discrete Fourier transform of a real-valued signal.
//
// Signals shorter than two samples are returned complex-promoted but
// otherwise unchanged. Other lengths are zero-padded to the next power of
// two, so the result may be longer than the input.
func Forward(signal []float64) []complex128 {
	if len(signal) == 0 {
		return nil
	}

	x := make([]complex128, NextPowerOfTwo(len(signal)))
	for i, v := range signal {
		x[i] = complex(v, 0)
	}

	if len(x) > 1 {
		transform(x)
	}

	return x
}

// ForwardComplex computes the transform of an already complex buffer.
//
// The input is never mutated; the returned slice is freshly allocated and
// zero-padded to a power of two when necessary.
func ForwardComplex(input []complex128) []complex128 {
	if len(input) == 0 {
		return nil
	}

	x := make([]complex128, NextPowerOfTwo(len(input)))
	copy(x, input)

	if len(x) > 1 {
		transform(x)
	}

	return x
}

// Inverse computes the inverse transform and returns the real part.
//
// It exploits conjugate symmetry: conjugate, run the forward transform,
// conjugate again and divide by the transform length. The caller must supply
// a full complex spectrum including the negative-frequency half; spectra
// whose length is not a power of two are zero-padded first, and the divisor
// is the padded length.
func Inverse(spectrum []complex128) []float64 {
	if len(spectrum) == 0 {
		return nil
	}

	x := make([]complex128, NextPowerOfTwo(len(spectrum)))
	for i, v := range spectrum {
		x[i] = complex(real(v), -imag(v))
	}

	if len(x) > 1 {
		transform(x)
	}

	out := make([]float64, len(x))
	scale := 1 / float64(len(x))
	for i, v := range x {
		// conj(X)/n; the imaginary part is discarded.
		out[i] = real(v) * scale
	}

	return out
}

// BinFrequency returns the center frequency in Hz of the given bin for a
// transform of the given size. Bins above size/2 map to negative
// frequencies.
func BinFrequency(bin, size int, sampleRate float64) float64 {
	if size <= 0 {
		return 0
	}

	f := float64(bin) * sampleRate / float64(size)
	if bin > size/2 {
		f -= sampleRate
	}

	return f
}

// BinFrequencies returns the center frequency of every bin of a transform of
// the given size, in natural bin order.
func BinFrequencies(size int, sampleRate float64) []float64 {
	if size <= 0 {
		return nil
	}

	out := make([]float64, size)
	for k := range out {
		out[k] = BinFrequency(k, size, sampleRate)
	}

	return out
}

// transform runs the in-place radix-2 decimation-in-time transform.
// len(x) must be a power of two >= 2.
func transform(x []complex128) {
	bitReverse(x)

	n := len(x)
	for length := 2; length <= n; length <<= 1 {
		half := length / 2

		twiddles := make([]complex128, half)
		for k := range twiddles {
			angle := -2 * math.Pi * float64(k) / float64(length)
			twiddles[k] = complex(math.Cos(angle), math.Sin(angle))
		}

		for start := 0; start < n; start += length {
			for k := 0; k < half; k++ {
				u := x[start+k]
				v := twiddles[k] * x[start+k+half]
				x[start+k] = u + v
				x[start+k+half] = u - v
			}
		}
	}
}

// bitReverse permutes x so that each element lands at the index obtained by
// reversing the bits of its original index over log2(len(x)) bits.
func bitReverse(x []complex128) {
	n := len(x)

	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j ^= bit
			bit >>= 1
		}
		j ^= bit

		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
}
