// Command eqbands prints the layout of a logarithmic equalizer band bank.
//
// Usage:
//
//	eqbands [flags]
//
// Examples:
//
//	eqbands
//	eqbands -num 5
//	eqbands -num 31 -min 20 -max 16000
//	eqbands -response -points 16
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

func main() {
	num := flag.Int("num", 10, "number of bands")
	minFreq := flag.Float64("min", 20, "lowest band edge in Hz")
	maxFreq := flag.Float64("max", 20000, "highest band edge in Hz")
	response := flag.Bool("response", false, "print the flat frequency response curve instead of the band table")
	points := flag.Int("points", 32, "number of response curve points (with -response)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqbands [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the layout of a logarithmic equalizer band bank.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqbands -num 31 -min 20 -max 16000\n")
		fmt.Fprintf(os.Stderr, "  eqbands -response -points 16\n")
	}
	flag.Parse()

	bands, err := eq.DefaultBands(*num, *minFreq, *maxFreq)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *response {
		printResponse(bands, *points)
		return
	}

	printBands(bands)
}

func printBands(bands []eq.Band) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Band\tLabel\tLow [Hz]\tHigh [Hz]\tCenter [Hz]\tWidth [oct]\n")
	fmt.Fprintf(tw, "----\t-----\t--------\t---------\t-----------\t-----------\n")

	for _, b := range bands {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.1f\t%.1f\t%.3f\n",
			b.ID,
			b.Label,
			b.LowFreq,
			b.HighFreq,
			b.CenterFreq,
			octaves(b.LowFreq, b.HighFreq),
		)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printResponse(bands []eq.Band, points int) {
	curve := eq.FrequencyResponse(bands, points)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tGain\n")
	fmt.Fprintf(tw, "--------------\t----\n")
	for i, f := range curve.Frequencies {
		fmt.Fprintf(tw, "%.1f\t%.3f\n", f, curve.Magnitude[i])
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func octaves(low, high float64) float64 {
	if low <= 0 || high <= low {
		return 0
	}
	return math.Log2(high / low)
}
