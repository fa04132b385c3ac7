// Package eq reshapes the spectral content of finite sample buffers by
// applying per-band gain in the frequency domain.
package eq

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/fft"
)

const (
	// Level reconciliation only rescales when the RMS ratio sits in this
	// window; anything outside is treated as a deliberate gain change.
	levelRatioLow  = 0.1
	levelRatioHigh = 10.0

	// Peak threshold above which the soft limiter engages.
	limiterThreshold = 0.95
)

// Equalizer applies frequency-band gain adjustments to sample buffers.
//
// Instances are stateless between calls and safe for concurrent use.
type Equalizer struct {
	cfg        core.ProcessorConfig
	levelGuard bool
}

// Option configures an Equalizer.
type Option func(*Equalizer)

// WithoutLevelGuard disables RMS level reconciliation, so band gains pass
// through to the output level unchecked.
func WithoutLevelGuard() Option {
	return func(e *Equalizer) {
		e.levelGuard = false
	}
}

// NewEqualizer creates a configured equalizer.
func NewEqualizer(opts ...core.ProcessorOption) *Equalizer {
	return &Equalizer{
		cfg:        core.ApplyProcessorOptions(opts...),
		levelGuard: true,
	}
}

// NewEqualizerWithOptions creates an equalizer with eq-specific options.
func NewEqualizerWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Equalizer {
	e := NewEqualizer(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Config returns the equalizer processor configuration.
func (e *Equalizer) Config() core.ProcessorConfig {
	return e.cfg
}

// Apply returns signal with the band gains applied, always exactly the
// input's length.
//
// Bands with Scale exactly 1.0 are skipped: a unity band must never perturb
// the signal, not even through transform round-off. If no band modifies the
// spectrum the input is copied through untouched. Malformed bands do not
// panic; Apply degrades to returning an unmodified copy of the input
// alongside the error, so callers can treat the result as a soft failure.
func (e *Equalizer) Apply(signal []float64, bands []Band) ([]float64, error) {
	out := append([]float64(nil), signal...)

	for _, band := range bands {
		if err := band.Validate(); err != nil {
			return out, err
		}
	}

	if len(signal) == 0 {
		return out, nil
	}

	active := activeBands(bands)
	if len(active) == 0 {
		return out, nil
	}

	input := fft.Forward(signal)
	freqs := fft.BinFrequencies(len(input), e.cfg.SampleRate)

	shaped := append([]complex128(nil), input...)
	for _, band := range active {
		scale := complex(band.Scale, 0)
		for k, f := range freqs {
			// Mirror the gain onto the symmetric negative-frequency
			// bins so the inverse transform stays real-valued. Each
			// band reads the untouched input spectrum, so overlapping
			// bands overwrite rather than compound.
			inPositive := f >= 0 && f >= band.LowFreq && f <= band.HighFreq
			inNegative := f < 0 && f >= -band.HighFreq && f <= -band.LowFreq
			if inPositive || inNegative {
				shaped[k] = input[k] * scale
			}
		}
	}

	out = fft.Inverse(shaped)[:len(signal)]

	if e.levelGuard {
		reconcileLevel(out, signal)
	}

	softLimit(out)
	core.ZeroNonFinite(out)

	return out, nil
}

// activeBands filters out unity-gain bands, preserving sequence order.
func activeBands(bands []Band) []Band {
	active := make([]Band, 0, len(bands))
	for _, band := range bands {
		if band.Scale != 1.0 {
			active = append(active, band)
		}
	}
	return active
}

// reconcileLevel rescales out so its RMS matches the reference, but only
// when the ratio falls inside the policy window; larger deviations are
// taken as intentional gain changes and left alone.
func reconcileLevel(out, reference []float64) {
	refRMS := rms(reference)
	outRMS := rms(out)
	if refRMS <= 0 || outRMS <= 0 {
		return
	}

	ratio := refRMS / outRMS
	if ratio > levelRatioLow && ratio < levelRatioHigh {
		vecmath.ScaleBlockInPlace(out, ratio)
	}
}

// softLimit applies tanh(x*0.9)*0.95 sample-wise when the peak exceeds the
// threshold. Smooth saturation is preferred over hard clipping.
func softLimit(out []float64) {
	if vecmath.MaxAbs(out) <= limiterThreshold {
		return
	}

	for i, v := range out {
		out[i] = math.Tanh(v*0.9) * limiterThreshold
	}
}

func rms(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(vecmath.DotProduct(signal, signal) / float64(len(signal)))
}
