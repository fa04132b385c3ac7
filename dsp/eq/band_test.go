package eq

import (
	"math"
	"testing"
)

func TestDefaultBandsCoverage(t *testing.T) {
	bands, err := DefaultBands(10, 20, 20000)
	if err != nil {
		t.Fatalf("DefaultBands() error = %v", err)
	}

	if len(bands) != 10 {
		t.Fatalf("bands = %d, want 10", len(bands))
	}
	if bands[0].LowFreq != 20 {
		t.Fatalf("first edge = %v, want 20", bands[0].LowFreq)
	}
	if bands[9].HighFreq != 20000 {
		t.Fatalf("last edge = %v, want 20000", bands[9].HighFreq)
	}

	for i, b := range bands {
		if b.HighFreq <= b.LowFreq {
			t.Fatalf("band %d edges not increasing: [%v, %v]", i, b.LowFreq, b.HighFreq)
		}
		if i > 0 && b.LowFreq != bands[i-1].HighFreq {
			t.Fatalf("band %d not contiguous: low %v != previous high %v", i, b.LowFreq, bands[i-1].HighFreq)
		}
		if b.Scale != 1.0 {
			t.Fatalf("band %d scale = %v, want 1.0", i, b.Scale)
		}
		if b.ID != i+1 {
			t.Fatalf("band %d ID = %d, want %d", i, b.ID, i+1)
		}
		if b.Label == "" {
			t.Fatalf("band %d has empty label", i)
		}

		wantCenter := math.Sqrt(b.LowFreq * b.HighFreq)
		if math.Abs(b.CenterFreq-wantCenter) > 1e-9 {
			t.Fatalf("band %d center = %v, want %v", i, b.CenterFreq, wantCenter)
		}
	}
}

func TestDefaultBandsFallbacks(t *testing.T) {
	bands, err := DefaultBands(0, 0, 0)
	if err == nil {
		t.Fatal("expected error for max <= min after defaulting min only")
	}
	_ = bands

	bands, err = DefaultBands(0, 0, 20000)
	if err != nil {
		t.Fatalf("DefaultBands() error = %v", err)
	}
	if len(bands) != 10 {
		t.Fatalf("bands = %d, want defaulted 10", len(bands))
	}
}

func TestFrequencyResponseSingleBand(t *testing.T) {
	curve := FrequencyResponse([]Band{{LowFreq: 100, HighFreq: 200, Scale: 0.5}}, 1024)

	if len(curve.Frequencies) != 1024 || len(curve.Magnitude) != 1024 {
		t.Fatalf("curve lengths = %d/%d, want 1024", len(curve.Frequencies), len(curve.Magnitude))
	}
	if curve.Frequencies[0] != 20 || curve.Frequencies[1023] != 20000 {
		t.Fatalf("curve span = [%v, %v], want [20, 20000]", curve.Frequencies[0], curve.Frequencies[1023])
	}

	sawInterior := false
	for i, f := range curve.Frequencies {
		want := 1.0
		if f >= 100 && f <= 200 {
			want = 0.5
			sawInterior = true
		}
		if curve.Magnitude[i] != want {
			t.Fatalf("gain at %v Hz = %v, want %v", f, curve.Magnitude[i], want)
		}
	}
	if !sawInterior {
		t.Fatal("no curve point fell inside [100, 200] Hz")
	}
}

func TestFrequencyResponseOverlapLastWins(t *testing.T) {
	curve := FrequencyResponse([]Band{
		{LowFreq: 100, HighFreq: 1000, Scale: 0.25},
		{LowFreq: 500, HighFreq: 800, Scale: 2.0},
	}, 512)

	for i, f := range curve.Frequencies {
		switch {
		case f >= 500 && f <= 800:
			if curve.Magnitude[i] != 2.0 {
				t.Fatalf("gain at %v Hz = %v, want 2.0 from later band", f, curve.Magnitude[i])
			}
		case f >= 100 && f <= 1000:
			if curve.Magnitude[i] != 0.25 {
				t.Fatalf("gain at %v Hz = %v, want 0.25", f, curve.Magnitude[i])
			}
		}
	}
}

func TestBandValidate(t *testing.T) {
	valid := Band{LowFreq: 100, HighFreq: 200, Scale: 1.5}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	invalid := []Band{
		{LowFreq: -1, HighFreq: 200, Scale: 1},
		{LowFreq: 200, HighFreq: 100, Scale: 1},
		{LowFreq: 100, HighFreq: 100, Scale: 1},
		{LowFreq: 100, HighFreq: 200, Scale: -0.5},
		{LowFreq: 100, HighFreq: math.Inf(1), Scale: 1},
	}
	for i, b := range invalid {
		if err := b.Validate(); err == nil {
			t.Fatalf("band %d: Validate() = nil, want error", i)
		}
	}
}

func TestFormatFrequency(t *testing.T) {
	if got := formatFrequency(20); got != "20Hz" {
		t.Fatalf("formatFrequency(20) = %q", got)
	}
	if got := formatFrequency(2500); got != "2.5kHz" {
		t.Fatalf("formatFrequency(2500) = %q", got)
	}
}
