// Command eqfile applies band equalization to a WAV file.
//
// Usage:
//
//	eqfile [flags] -in input.wav -out output.wav
//
// Bands are given as low:high:scale triples and may repeat:
//
//	eqfile -in voice.wav -out bright.wav -band 2000:8000:1.5
//	eqfile -in hum.wav -out clean.wav -band 40:70:0 -band 110:130:0
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

type bandList []eq.Band

func (b *bandList) String() string { return fmt.Sprint(*b) }

func (b *bandList) Set(v string) error {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return fmt.Errorf("band must be low:high:scale, got %q", v)
	}

	low, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return fmt.Errorf("band low frequency: %v", err)
	}
	high, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return fmt.Errorf("band high frequency: %v", err)
	}
	scale, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return fmt.Errorf("band scale: %v", err)
	}

	band := eq.Band{ID: len(*b) + 1, LowFreq: low, HighFreq: high, Scale: scale}
	if err := band.Validate(); err != nil {
		return err
	}

	*b = append(*b, band)
	return nil
}

func main() {
	in := flag.String("in", "", "input WAV file")
	out := flag.String("out", "", "output WAV file")
	var bands bandList
	flag.Var(&bands, "band", "equalizer band as low:high:scale (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqfile [flags] -in input.wav -out output.wav\n\n")
		fmt.Fprintf(os.Stderr, "Applies band equalization to a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqfile -in voice.wav -out bright.wav -band 2000:8000:1.5\n")
		fmt.Fprintf(os.Stderr, "  eqfile -in hum.wav -out clean.wav -band 40:70:0\n")
	}
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(bands) == 0 {
		fmt.Fprintf(os.Stderr, "error: at least one -band is required\n")
		os.Exit(2)
	}

	if err := run(*in, *out, bands); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, bands []eq.Band) error {
	buf, err := readWAV(inPath)
	if err != nil {
		return err
	}

	sampleRate := float64(buf.Format.SampleRate)
	samples, scale := toFloat(buf)

	equalizer := eq.NewEqualizer(core.WithSampleRate(sampleRate))
	processed, err := equalizer.Apply(samples, bands)
	if err != nil {
		return fmt.Errorf("equalize %s: %v", inPath, err)
	}

	fromFloat(buf, processed, scale)
	return writeWAV(outPath, buf)
}

func readWAV(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read PCM data: %v", err)
	}
	if len(buf.Data) == 0 {
		return nil, fmt.Errorf("%s contains no samples", path)
	}

	switch buf.Format.NumChannels {
	case 1:
	case 2:
		downmix(buf)
	default:
		return nil, fmt.Errorf("%s has %d channels, only mono and stereo are supported", path, buf.Format.NumChannels)
	}

	return buf, nil
}

// downmix averages interleaved stereo frames into a mono buffer.
func downmix(buf *audio.IntBuffer) {
	frames := len(buf.Data) / 2
	mono := make([]int, frames)
	for i := range mono {
		mono[i] = (buf.Data[2*i] + buf.Data[2*i+1]) / 2
	}
	buf.Data = mono
	buf.Format.NumChannels = 1
}

// toFloat converts PCM samples to [-1, 1] floats and returns the scale used.
func toFloat(buf *audio.IntBuffer) ([]float64, float64) {
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := math.Pow(2, float64(bitDepth-1))

	out := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float64(v) / scale
	}
	return out, scale
}

func fromFloat(buf *audio.IntBuffer, samples []float64, scale float64) {
	limit := scale - 1
	for i, v := range samples {
		s := math.Round(v * scale)
		if s > limit {
			s = limit
		} else if s < -scale {
			s = -scale
		}
		buf.Data[i] = int(s)
	}
}

func writeWAV(path string, buf *audio.IntBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %v", err)
	}
	defer f.Close()

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}

	enc := wav.NewEncoder(f, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write PCM data: %v", err)
	}
	return enc.Close()
}
