// Package spectrum computes single-frame magnitude spectra for display.
//
// The analyzer is tuned for visualization rather than measurement: it
// decimates long buffers by plain sample skipping (no anti-alias filter) and
// maps magnitudes onto a [0, 1] dB scale ready for plotting.
package spectrum
