/*
NAME
  bandsplit.go

DESCRIPTION
  bandsplit.go implements a two-way Linkwitz-Riley crossover, the
  double-precision band splitter collaborator §6 calls for. A pair of
  cascaded (4th-order) Butterworth biquads forms the lowpass and
  highpass bands; their sum reconstructs an all-pass version of the
  input, which BuildBFormatHrtf uses for the reverse-allpass-reverse
  phase-compensation trick of §4.7.

  No example in the pack implements an IIR crossover directly, so the
  biquad design follows the standard cookbook (bilinear-transform)
  formulas rather than a specific teacher file; see DESIGN.md.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bandsplit implements a double-precision Linkwitz-Riley
// crossover used to decompose an impulse response into low and high
// bands ahead of per-band gain shaping.
package bandsplit

import "math"

// biquad is a Direct-Form-II-transposed second-order IIR section.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

func (f *biquad) step(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x + f.z2 - f.a1*y
	f.z2 = f.b2*x - f.a2*y
	return y
}

func (f *biquad) reset() {
	f.z1, f.z2 = 0, 0
}

// butterworth2 returns a 2nd-order Butterworth biquad (Q = 1/sqrt(2)) at
// the given normalised frequency (cutoff / sampleRate), per Robert
// Bristow-Johnson's audio EQ cookbook formulas.
func butterworth2(freq float64, highpass bool) biquad {
	const q = math.Sqrt2 / 2
	w0 := 2 * math.Pi * freq
	cosW0, sinW0 := math.Cos(w0), math.Sin(w0)
	alpha := sinW0 / (2 * q)

	var b0, b1, b2 float64
	if highpass {
		b0 = (1 + cosW0) / 2
		b1 = -(1 + cosW0)
		b2 = (1 + cosW0) / 2
	} else {
		b0 = (1 - cosW0) / 2
		b1 = 1 - cosW0
		b2 = (1 - cosW0) / 2
	}
	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	return biquad{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

// Splitter is a 4th-order (two cascaded 2nd-order stages) Linkwitz-Riley
// crossover at a fixed normalised frequency.
type Splitter struct {
	freq               float64
	lp1, lp2, hp1, hp2 biquad
}

// New returns a Splitter crossing over at freq, a crossover frequency
// already normalised by the sample rate it will run at (0 < freq < 0.5).
func New(freq float64) *Splitter {
	return &Splitter{
		freq: freq,
		lp1:  butterworth2(freq, false),
		lp2:  butterworth2(freq, false),
		hp1:  butterworth2(freq, true),
		hp2:  butterworth2(freq, true),
	}
}

// Clear resets all internal filter state. Callers must clear between
// independent passes over a buffer (e.g. the allpass pass and the
// subsequent band-split pass in BuildBFormatHrtf's phase-compensation
// trick) and between channels.
func (s *Splitter) Clear() {
	s.lp1.reset()
	s.lp2.reset()
	s.hp1.reset()
	s.hp2.reset()
}

// Process band-splits in into lo and hi, which must be the same length
// as in.
func (s *Splitter) Process(lo, hi, in []float64) {
	for i, x := range in {
		lo[i] = s.lp2.step(s.lp1.step(x))
		hi[i] = s.hp2.step(s.hp1.step(x))
	}
}

// ApplyAllpass overwrites buf in place with the crossover's all-pass
// response: the Linkwitz-Riley identity that the lowpass and highpass
// bands sum back to an all-pass-filtered version of the input, carrying
// the same phase shift the crossover imposes on a signal it splits.
func (s *Splitter) ApplyAllpass(buf []float64) {
	for i, x := range buf {
		lo := s.lp2.step(s.lp1.step(x))
		hi := s.hp2.step(s.hp1.step(x))
		buf[i] = lo + hi
	}
}
