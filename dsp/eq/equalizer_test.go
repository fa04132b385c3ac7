package eq

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/fft"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

func TestApplyUnityBandsPassThrough(t *testing.T) {
	e := NewEqualizer(core.WithSampleRate(44100))

	bands, err := DefaultBands(10, 20, 20000)
	if err != nil {
		t.Fatalf("DefaultBands() error = %v", err)
	}

	sig := testutil.Sine(440, 44100, 0.5, 1000)
	out, err := e.Apply(sig, bands)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if diff := testutil.MaxAbsDiff(t, out, sig); diff > 1e-9 {
		t.Fatalf("unity bands perturbed signal: max diff %v", diff)
	}
}

func TestApplyPreservesLength(t *testing.T) {
	e := NewEqualizer(core.WithSampleRate(44100))
	bands := []Band{{LowFreq: 500, HighFreq: 1500, Scale: 2.0}}

	for _, n := range []int{1, 1000, 1024} {
		sig := testutil.Sine(1000, 44100, 0.3, n)

		out, err := e.Apply(sig, bands)
		if err != nil {
			t.Fatalf("n=%d: Apply() error = %v", n, err)
		}
		if len(out) != n {
			t.Fatalf("n=%d: output length = %d", n, len(out))
		}
		testutil.RequireFinite(t, out)
	}
}

func TestApplyEmptySignal(t *testing.T) {
	e := NewEqualizer()

	out, err := e.Apply(nil, []Band{{LowFreq: 100, HighFreq: 200, Scale: 2}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("output length = %d, want 0", len(out))
	}
}

func TestApplyBoostDoublesPeakWithoutLevelGuard(t *testing.T) {
	e := NewEqualizerWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(44100)},
		WithoutLevelGuard(),
	)

	sig := testutil.Sine(1000, 44100, 0.3, 44100)
	out, err := e.Apply(sig, []Band{{LowFreq: 500, HighFreq: 1500, Scale: 2.0}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	peak := testutil.Peak(out)
	if peak < 0.55 || peak > 0.66 {
		t.Fatalf("peak = %v, want roughly doubled 0.6", peak)
	}
}

func TestApplyLevelGuardRestoresLoudness(t *testing.T) {
	e := NewEqualizer(core.WithSampleRate(44100))

	sig := testutil.Sine(1000, 44100, 0.3, 44100)
	out, err := e.Apply(sig, []Band{{LowFreq: 500, HighFreq: 1500, Scale: 2.0}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	inRMS := testutil.RMS(sig)
	outRMS := testutil.RMS(out)
	if math.Abs(outRMS-inRMS)/inRMS > 1e-9 {
		t.Fatalf("level guard missed: in RMS %v, out RMS %v", inRMS, outRMS)
	}
}

func TestApplyNonOverlappingBandKeepsRMS(t *testing.T) {
	e := NewEqualizer(core.WithSampleRate(44100))

	sig := testutil.Sine(1000, 44100, 0.3, 44100)
	out, err := e.Apply(sig, []Band{{LowFreq: 5000, HighFreq: 6000, Scale: 2.0}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	inRMS := testutil.RMS(sig)
	outRMS := testutil.RMS(out)
	if math.Abs(outRMS-inRMS)/inRMS > 0.01 {
		t.Fatalf("band outside tone changed RMS: in %v, out %v", inRMS, outRMS)
	}
}

func TestApplyBoostsInBandToneRelatively(t *testing.T) {
	// Bin-aligned tones at an 8192 Hz rate: bin k is exactly k Hz, so
	// leakage cannot blur the comparison.
	const (
		n          = 8192
		sampleRate = 8192.0
		lowTone    = 1000
		highTone   = 3000
	)

	sig := make([]float64, n)
	for i := range sig {
		ph := 2 * math.Pi * float64(i) / n
		sig[i] = 0.2*math.Sin(float64(lowTone)*ph) + 0.2*math.Sin(float64(highTone)*ph)
	}

	e := NewEqualizer(core.WithSampleRate(sampleRate))
	out, err := e.Apply(sig, []Band{{LowFreq: 500, HighFreq: 1500, Scale: 2.0}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	bins := fft.Forward(out)
	ratio := cmplx.Abs(bins[lowTone]) / cmplx.Abs(bins[highTone])
	if math.Abs(ratio-2) > 1e-6 {
		t.Fatalf("in-band/out-of-band magnitude ratio = %v, want 2", ratio)
	}
}

func TestApplyCutSilencesTone(t *testing.T) {
	const n = 4096

	sig := make([]float64, n)
	for i := range sig {
		sig[i] = 0.5 * math.Sin(2*math.Pi*1000*float64(i)/n)
	}

	e := NewEqualizer(core.WithSampleRate(n))
	out, err := e.Apply(sig, []Band{{LowFreq: 900, HighFreq: 1100, Scale: 0.0}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got := testutil.RMS(out); got > 1e-6 {
		t.Fatalf("tone survived zero-scale band: RMS %v", got)
	}
}

func TestApplySoftLimiterCapsPeak(t *testing.T) {
	e := NewEqualizerWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(44100)},
		WithoutLevelGuard(),
	)

	sig := testutil.Sine(1000, 44100, 0.8, 8192)
	out, err := e.Apply(sig, []Band{{LowFreq: 20, HighFreq: 20000, Scale: 3.0}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	peak := testutil.Peak(out)
	if peak > 0.95 {
		t.Fatalf("peak = %v, want <= 0.95", peak)
	}
	if peak < 0.8 {
		t.Fatalf("peak = %v, limiter crushed the signal", peak)
	}
}

func TestApplyMalformedBandReturnsOriginal(t *testing.T) {
	e := NewEqualizer()

	sig := testutil.Sine(440, 44100, 0.5, 256)
	out, err := e.Apply(sig, []Band{{LowFreq: 200, HighFreq: 100, Scale: 2}})
	if err == nil {
		t.Fatal("Apply() error = nil, want error for inverted band range")
	}
	testutil.RequireSliceNearlyEqual(t, out, sig, 0)

	out, err = e.Apply(sig, []Band{{LowFreq: 100, HighFreq: 200, Scale: -1}})
	if err == nil {
		t.Fatal("Apply() error = nil, want error for negative scale")
	}
	testutil.RequireSliceNearlyEqual(t, out, sig, 0)

	out, err = e.Apply(sig, []Band{{LowFreq: math.NaN(), HighFreq: 200, Scale: 1}})
	if err == nil {
		t.Fatal("Apply() error = nil, want error for non-finite field")
	}
	testutil.RequireSliceNearlyEqual(t, out, sig, 0)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	e := NewEqualizer(core.WithSampleRate(44100))

	sig := testutil.Sine(1000, 44100, 0.3, 1000)
	orig := append([]float64(nil), sig...)

	if _, err := e.Apply(sig, []Band{{LowFreq: 500, HighFreq: 1500, Scale: 2}}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, sig, orig, 0)
}

func TestApplyOverlappingBandsLastWins(t *testing.T) {
	const n = 4096

	sig := make([]float64, n)
	for i := range sig {
		sig[i] = 0.2 * math.Sin(2*math.Pi*1000*float64(i)/n)
	}

	e := NewEqualizerWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(n)},
		WithoutLevelGuard(),
	)

	bands := []Band{
		{LowFreq: 500, HighFreq: 1500, Scale: 4.0},
		{LowFreq: 900, HighFreq: 1100, Scale: 2.0},
	}

	out, err := e.Apply(sig, bands)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// The later, narrower band overwrites the wider one: x2, not x8.
	peak := testutil.Peak(out)
	if math.Abs(peak-0.4) > 0.02 {
		t.Fatalf("peak = %v, want ~0.4 from the last band's scale", peak)
	}
}
