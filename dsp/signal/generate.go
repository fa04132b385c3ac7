// Package signal synthesizes test buffers for exercising the spectral
// processors.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-eq/dsp/core"
)

const (
	// Harmonic amplitudes added below Nyquist for richer test tones.
	secondHarmonicAmp = 0.3
	thirdHarmonicAmp  = 0.2

	// Gaussian noise floor mixed into synthesized tones.
	toneNoiseSigma = 0.02

	// Peak level all generated buffers are normalized to.
	targetPeak = 0.8
)

// Generator creates test signals from a shared configuration.
//
// Tone phases and noise are drawn from a seeded source, so two generators
// with the same seed produce identical buffers.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for phases and noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Synthesize builds a multi-tone test signal together with its time axis.
//
// Each requested frequency contributes a sinusoid at amplitude 1/len with an
// independent random phase, plus second and third harmonics (0.3 and 0.2)
// for every harmonic below Nyquist. A low Gaussian noise floor is mixed in
// and the buffer is normalized to a 0.8 peak.
func (g *Generator) Synthesize(frequencies []float64, duration float64) (out, timeAxis []float64, err error) {
	if len(frequencies) == 0 {
		return nil, nil, fmt.Errorf("signal: synthesize requires at least one frequency")
	}
	if duration <= 0 {
		return nil, nil, fmt.Errorf("signal: duration must be > 0: %f", duration)
	}

	sampleRate := g.cfg.SampleRate
	nyquist := sampleRate / 2

	samples := int(sampleRate * duration)
	if samples <= 0 {
		return nil, nil, fmt.Errorf("signal: duration %f too short at %f Hz", duration, sampleRate)
	}

	out = make([]float64, samples)
	timeAxis = make([]float64, samples)
	for i := range timeAxis {
		timeAxis[i] = float64(i) / sampleRate
	}

	rng := rand.New(rand.NewSource(g.seed))

	amplitude := 1.0 / float64(len(frequencies))
	for _, freq := range frequencies {
		phase := rng.Float64() * 2 * math.Pi
		step := 2 * math.Pi * freq / sampleRate
		for i := range out {
			out[i] += amplitude * math.Sin(step*float64(i)+phase)
		}
	}

	harmonics := []struct{ mult, amp float64 }{
		{2, secondHarmonicAmp},
		{3, thirdHarmonicAmp},
	}
	for _, freq := range frequencies {
		for _, h := range harmonics {
			hf := freq * h.mult
			if hf >= nyquist {
				continue
			}

			step := 2 * math.Pi * hf / sampleRate
			for i := range out {
				out[i] += h.amp * math.Sin(step*float64(i))
			}
		}
	}

	for i := range out {
		out[i] += rng.NormFloat64() * toneNoiseSigma
	}

	out, err = Normalize(out, targetPeak)
	if err != nil {
		return nil, nil, err
	}

	return out, timeAxis, nil
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// GaussianNoise generates a Gaussian noise buffer normalized to a 0.8 peak.
func (g *Generator) GaussianNoise(duration float64) ([]float64, error) {
	samples := int(g.cfg.SampleRate * duration)
	if samples <= 0 {
		return nil, fmt.Errorf("signal: duration must be > 0: %f", duration)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = rng.NormFloat64() * 0.5
	}

	return Normalize(out, targetPeak)
}

// Chirp generates a linear frequency sweep from startHz to endHz.
func (g *Generator) Chirp(startHz, endHz, duration float64) ([]float64, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("signal: duration must be > 0: %f", duration)
	}

	sampleRate := g.cfg.SampleRate
	samples := int(sampleRate * duration)
	if samples <= 0 {
		return nil, fmt.Errorf("signal: duration %f too short at %f Hz", duration, sampleRate)
	}

	out := make([]float64, samples)
	for i := range out {
		t := float64(i) / sampleRate
		phase := 2*math.Pi*startHz*t + math.Pi*(endHz-startHz)*t*t/duration
		out[i] = targetPeak * math.Sin(phase)
	}
	return out, nil
}

// Normalize scales data to the target peak amplitude and returns a new slice.
func Normalize(data []float64, peak float64) ([]float64, error) {
	if peak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", peak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || peak == 0 {
		return out, nil
	}

	scale := peak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// RemoveDC subtracts the mean from data and returns a new slice.
func RemoveDC(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: remove DC input must not be empty")
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}
	mean := sum / float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out, nil
}
