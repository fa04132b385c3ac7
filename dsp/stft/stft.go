// Package stft renders time-frequency spectrograms from finite sample
// buffers via overlapping, windowed transform frames.
package stft

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/fft"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/dsp/window"
)

const (
	defaultFFTSize = 1024

	magnitudeEpsilon = 1e-12
	floorDB          = -80.0
)

// Engine slices a signal into overlapping frames and transforms each one.
//
// Output is frame-major: the outer slice is time (chronological), the inner
// slice holds the fftSize/2 positive-frequency magnitude bins of one frame.
type Engine struct {
	cfg        core.ProcessorConfig
	fftSize    int
	hopLength  int
	windowType window.Type
	dbScale    bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithFFTSize sets the frame length. Values that are not a power of two are
// rounded up so every frame transforms without internal re-padding.
func WithFFTSize(n int) Option {
	return func(e *Engine) {
		if n > 1 {
			e.fftSize = fft.NextPowerOfTwo(n)
		}
	}
}

// WithHopLength sets the frame advance in samples. Defaults to half the
// frame length (50% overlap).
func WithHopLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.hopLength = n
		}
	}
}

// WithWindowType selects the frame taper. Hann by default; Hamming is the
// supported alternative.
func WithWindowType(t window.Type) Option {
	return func(e *Engine) {
		e.windowType = t
	}
}

// WithDBScale converts frame magnitudes to the [0, 1] dB display scale
// (20*log10(m+1e-12), clipped to [-80, 0] dB, rescaled). Without it frames
// hold linear magnitudes.
func WithDBScale() Option {
	return func(e *Engine) {
		e.dbScale = true
	}
}

// NewEngine creates a configured spectrogram engine.
func NewEngine(coreOpts []core.ProcessorOption, opts ...Option) *Engine {
	e := &Engine{
		cfg:        core.ApplyProcessorOptions(coreOpts...),
		fftSize:    defaultFFTSize,
		windowType: window.TypeHann,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.hopLength <= 0 {
		e.hopLength = e.fftSize / 2
	}

	return e
}

// FFTSize returns the effective frame length.
func (e *Engine) FFTSize() int { return e.fftSize }

// HopLength returns the effective frame advance.
func (e *Engine) HopLength() int { return e.hopLength }

// Frequencies returns the center frequency of each spectrogram bin.
func (e *Engine) Frequencies() []float64 {
	out := make([]float64, e.fftSize/2)
	for k := range out {
		out[k] = fft.BinFrequency(k, e.fftSize, e.cfg.SampleRate)
	}

	return out
}

// Compute returns the spectrogram of signal.
//
// The signal is right-padded with zeros so the last frame fits; inputs
// shorter than one frame are padded up to a single full frame instead of
// failing. The input is never mutated. An empty signal yields no frames.
func (e *Engine) Compute(signal []float64) [][]float64 {
	if len(signal) == 0 {
		return nil
	}

	padded := core.PadZeros(signal, paddedLength(len(signal), e.fftSize, e.hopLength))
	coeffs := window.Generate(e.windowType, e.fftSize, window.WithPeriodic())

	frameCount := (len(padded)-e.fftSize)/e.hopLength + 1
	frames := make([][]float64, 0, frameCount)

	var frame []float64
	for start := 0; start+e.fftSize <= len(padded); start += e.hopLength {
		frame = core.EnsureLen(frame, e.fftSize)
		copy(frame, padded[start:start+e.fftSize])

		if err := window.ApplyCoefficientsInPlace(frame, coeffs); err != nil {
			return nil
		}

		bins := fft.Forward(frame)
		mags := spectrum.Magnitude(bins[:e.fftSize/2])

		if e.dbScale {
			for i, m := range mags {
				mags[i] = scaleDB(m)
			}
		}

		frames = append(frames, mags)
	}

	return frames
}

func paddedLength(n, fftSize, hop int) int {
	pad := (fftSize - n%hop) % hop

	total := n + pad
	if total < fftSize {
		total = fftSize
	}

	return total
}

func scaleDB(mag float64) float64 {
	db := core.Clamp(20*math.Log10(mag+magnitudeEpsilon), floorDB, 0)
	return (db - floorDB) / -floorDB
}
