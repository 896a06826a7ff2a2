/*
NAME
  resample.go

DESCRIPTION
  resample.go implements a windowed-sinc polyphase resampler: the
  black-box collaborator §6 of the HRTF spec calls for, used by the
  conditioner to convert an impulse response from a file's recorded
  sample rate to the device's rate. It follows the windowed-sinc FIR
  design codec/pcm's SelectiveFrequencyFilter uses (a Blackman window
  from go-dsp/window shaping a sinc kernel) but evaluates the kernel at
  arbitrary fractional sample offsets instead of building a fixed tap
  table, so it supports any src:dst rate ratio, not just integer
  decimation.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package resample implements a fixed-support windowed-sinc resampler
// for fixed-length impulse-response buffers.
package resample

import (
	"math"

	"github.com/mjibson/go-dsp/window"
)

// halfTaps is the half-width, in input samples, of the sinc kernel's
// finite support. Larger values trade CPU for passband accuracy; 16 is
// ample for the short (<= 512 sample) IRs this resampler handles.
const halfTaps = 16

// Polyphase is a windowed-sinc resampler satisfying the hrtf.Resampler
// contract (Init/Process) by duck typing.
type Polyphase struct {
	srcRate, dstRate int
	win              []float64 // precomputed Blackman window over the kernel support
}

// New returns a Polyphase resampler. Call Init before the first Process.
func New() *Polyphase {
	return &Polyphase{win: window.Blackman(2*halfTaps + 1)}
}

// Init configures the resampler for a srcRate -> dstRate conversion.
func (p *Polyphase) Init(srcRate, dstRate int) {
	p.srcRate, p.dstRate = srcRate, dstRate
}

// Process resamples in (at srcRate) into out (at dstRate). Both buffers
// keep the caller's chosen length; Process does not resize them, so a
// fixed-length IR buffer stays fixed-length across the rate change.
func (p *Polyphase) Process(in, out []float64) {
	ratio := float64(p.srcRate) / float64(p.dstRate)

	// Downsampling needs a lower cutoff to avoid aliasing; upsampling
	// (ratio < 1) can use the full input bandwidth.
	cutoff := 1.0
	if ratio > 1 {
		cutoff = 1 / ratio
	}

	for i := range out {
		srcPos := float64(i) * ratio
		out[i] = p.tap(in, srcPos, cutoff)
	}
}

// tap evaluates the windowed-sinc kernel centred at the fractional input
// position pos, summing over the finite support around it.
func (p *Polyphase) tap(in []float64, pos, cutoff float64) float64 {
	center := int(math.Floor(pos))
	var sum float64
	for k := center - halfTaps; k <= center+halfTaps; k++ {
		if k < 0 || k >= len(in) {
			continue
		}
		x := (pos - float64(k)) * cutoff
		sum += in[k] * cutoff * sinc(x) * p.win[k-center+halfTaps]
	}
	return sum
}

// sinc is the normalised sinc function, sin(pi*x)/(pi*x), with sinc(0)=1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
