package core

import "testing"

func TestDefaultProcessorConfig(t *testing.T) {
	cfg := DefaultProcessorConfig()
	if cfg.SampleRate != 44100 {
		t.Fatalf("SampleRate = %v, want 44100", cfg.SampleRate)
	}
	if cfg.BlockSize != 1024 {
		t.Fatalf("BlockSize = %d, want 1024", cfg.BlockSize)
	}
}

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(48000), WithBlockSize(512))
	if cfg.SampleRate != 48000 {
		t.Fatalf("SampleRate = %v, want 48000", cfg.SampleRate)
	}
	if cfg.BlockSize != 512 {
		t.Fatalf("BlockSize = %d, want 512", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(-1), WithBlockSize(0), nil)
	want := DefaultProcessorConfig()
	if cfg != want {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, want)
	}
}
