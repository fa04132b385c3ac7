package spectrum

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/fft"
	"github.com/cwbudde/algo-eq/dsp/window"
)

const (
	magnitudeEpsilon = 1e-12
	floorDB          = -80.0
	ceilDB           = 0.0
)

// Result holds a display-ready magnitude spectrum.
//
// Frequencies and Magnitude are parallel, index-aligned slices. Frequencies
// ascend and cover (0, sampleRate/2]; magnitudes are dB values rescaled to
// [0, 1].
type Result struct {
	Frequencies []float64
	Magnitude   []float64
}

// Analyzer computes single-frame spectra from real-valued sample buffers.
//
// The configured block size is the display target length: longer buffers
// are decimated by sample skipping before the transform.
type Analyzer struct {
	cfg core.ProcessorConfig
}

// NewAnalyzer creates a configured spectrum analyzer.
func NewAnalyzer(opts ...core.ProcessorOption) *Analyzer {
	return &Analyzer{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the analyzer processor configuration.
func (a *Analyzer) Config() core.ProcessorConfig {
	return a.cfg
}

// Compute returns the display spectrum of signal.
//
// The input is never mutated. An empty input yields an empty Result rather
// than an error.
func (a *Analyzer) Compute(signal []float64) Result {
	if len(signal) == 0 {
		return Result{}
	}

	buf := removeDC(signal)
	window.Apply(window.TypeHann, buf)
	buf = decimate(buf, a.cfg.BlockSize)
	if len(buf) == 0 {
		return Result{}
	}

	bins := fft.Forward(buf)
	binMags := Magnitude(bins)

	n := len(bins)
	norm := 1 / float64(len(buf))

	nyquist := a.cfg.SampleRate / 2

	freqs := make([]float64, 0, n/2)
	mags := make([]float64, 0, n/2)

	for k := 1; k < n/2; k++ {
		f := fft.BinFrequency(k, n, a.cfg.SampleRate)
		if f > nyquist {
			break
		}

		freqs = append(freqs, f)
		mags = append(mags, scaleDB(binMags[k]*norm))
	}

	return Result{Frequencies: freqs, Magnitude: mags}
}

// scaleDB maps a linear magnitude onto the [0, 1] plotting range via
// 20*log10(m+eps) clipped to [-80, 0] dB.
func scaleDB(mag float64) float64 {
	db := core.Clamp(20*math.Log10(mag+magnitudeEpsilon), floorDB, ceilDB)
	return (db - floorDB) / (ceilDB - floorDB)
}

func removeDC(signal []float64) []float64 {
	sum := 0.0
	for _, v := range signal {
		sum += v
	}
	mean := sum / float64(len(signal))

	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = v - mean
	}

	return out
}

// decimate keeps every step-th sample, step = ceil(len/target). This is a
// display shortcut, not a proper decimation filter.
func decimate(signal []float64, target int) []float64 {
	if target <= 0 || len(signal) <= target {
		return signal
	}

	step := (len(signal) + target - 1) / target

	out := make([]float64, 0, (len(signal)+step-1)/step)
	for i := 0; i < len(signal); i += step {
		out = append(out, signal[i])
	}

	return out
}
