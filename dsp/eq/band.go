package eq

import (
	"fmt"
	"math"
)

const (
	// Audible range covered by default band layouts and response curves.
	defaultMinFreq = 20.0
	defaultMaxFreq = 20000.0

	defaultResponsePoints = 1024
)

// Band describes a linear gain multiplier over a frequency interval.
//
// Bands form an ordered sequence; when intervals overlap, the band applied
// last wins for the bins it covers.
type Band struct {
	ID         int
	LowFreq    float64
	HighFreq   float64
	Scale      float64
	CenterFreq float64
	Label      string
}

// Validate reports whether the band is well-formed: finite fields,
// 0 <= LowFreq < HighFreq and Scale >= 0.
func (b Band) Validate() error {
	for _, v := range []float64{b.LowFreq, b.HighFreq, b.Scale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("eq: band %d has non-finite field", b.ID)
		}
	}

	if b.LowFreq < 0 {
		return fmt.Errorf("eq: band %d low frequency must be >= 0: %v", b.ID, b.LowFreq)
	}

	if b.HighFreq <= b.LowFreq {
		return fmt.Errorf("eq: band %d frequency range invalid: [%v, %v]", b.ID, b.LowFreq, b.HighFreq)
	}

	if b.Scale < 0 {
		return fmt.Errorf("eq: band %d scale must be >= 0: %v", b.ID, b.Scale)
	}

	return nil
}

// DefaultBands returns numBands contiguous, non-overlapping unity-gain bands
// with logarithmically spaced edges covering exactly [minFreq, maxFreq].
//
// Non-positive arguments fall back to a 10-band layout over the audible
// range.
func DefaultBands(numBands int, minFreq, maxFreq float64) ([]Band, error) {
	if numBands <= 0 {
		numBands = 10
	}

	if minFreq <= 0 {
		minFreq = defaultMinFreq
	}

	if maxFreq <= minFreq {
		return nil, fmt.Errorf("eq: band range invalid: [%v, %v]", minFreq, maxFreq)
	}

	edges := logSpace(minFreq, maxFreq, numBands+1)

	bands := make([]Band, numBands)
	for i := range bands {
		low, high := edges[i], edges[i+1]
		bands[i] = Band{
			ID:         i + 1,
			LowFreq:    low,
			HighFreq:   high,
			Scale:      1.0,
			CenterFreq: math.Sqrt(low * high),
			Label:      fmt.Sprintf("%s-%s", formatFrequency(low), formatFrequency(high)),
		}
	}

	// Force exact coverage despite log/exp rounding.
	bands[0].LowFreq = minFreq
	bands[numBands-1].HighFreq = maxFreq

	return bands, nil
}

// ResponseCurve is a piecewise-constant approximation of an equalizer
// configuration, independent of any actual signal.
//
// Frequencies and Magnitude are parallel, index-aligned slices.
type ResponseCurve struct {
	Frequencies []float64
	Magnitude   []float64
}

// FrequencyResponse samples the gain curve of bands at nPoints linearly
// spaced frequencies in [20, 20000] Hz.
//
// Every point starts at unity gain; each band in sequence order overwrites
// the points inside its interval, so later bands win on overlap. Unity
// bands participate here (unlike in Apply) because the curve reflects the
// configured layout, not a signal transformation.
func FrequencyResponse(bands []Band, nPoints int) ResponseCurve {
	if nPoints <= 0 {
		nPoints = defaultResponsePoints
	}

	freqs := linSpace(defaultMinFreq, defaultMaxFreq, nPoints)

	gains := make([]float64, nPoints)
	for i := range gains {
		gains[i] = 1.0
	}

	for _, band := range bands {
		for i, f := range freqs {
			if f >= band.LowFreq && f <= band.HighFreq {
				gains[i] = band.Scale
			}
		}
	}

	return ResponseCurve{Frequencies: freqs, Magnitude: gains}
}

func linSpace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop

	return out
}

func logSpace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	logStart := math.Log10(start)
	step := (math.Log10(stop) - logStart) / float64(n-1)
	for i := range out {
		out[i] = math.Pow(10, logStart+float64(i)*step)
	}
	out[n-1] = stop

	return out
}

func formatFrequency(f float64) string {
	if f >= 1000 {
		return fmt.Sprintf("%.1fkHz", f/1000)
	}

	return fmt.Sprintf("%.0fHz", f)
}
