// Package fft implements an iterative radix-2 Cooley-Tukey transform for
// real-valued audio buffers.
//
// The transform is self-contained on purpose: the equalizer and the
// analyzers in this module depend on the exact padding and bin-ordering
// behavior below, so the implementation does not delegate to an external
// FFT backend.
//
// Inputs whose length is not a power of two are right-padded with zeros to
// the next power of two, which lengthens the returned spectrum. Callers that
// need the original length must record it and truncate after inversion.
// Bins follow the standard FFT convention: bin 0 is DC, bins above n/2
// represent negative frequencies.
package fft
