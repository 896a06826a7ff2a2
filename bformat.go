/*
NAME
  bformat.go

DESCRIPTION
  bformat.go implements the ambisonic (B-format) bake of §4.7:
  sampling a store's nearest field at a fixed set of directions,
  aligning the resulting per-point impulse responses to a common
  delay, and accumulating them into a DirectHrtfState through either a
  single wideband path or a phase-compensated two-band crossover path.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package hrtf

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// AngularPoint is one sample direction the B-format bake evaluates the
// store at, in radians.
type AngularPoint struct {
	Elev, Azim float64
}

// crossoverFreq is the two-band split point, in Hz, used by the
// dual-band accumulation path of §4.7.
const crossoverFreq = 400.0

// dualBandDelay is the fixed extra delay (in samples) dual-band mode
// reserves so the crossover's group delay never pushes a tap before
// sample zero.
const dualBandDelay = 16

// BuildBFormatHrtf bakes store's first field, sampled at each of points,
// into state via matrix (len(points) rows of len(state.Coeffs) gains) and
// orderHFGain (per ambisonic-order high-band gain, indexed 0..3). When
// dualBand is set, each point's impulse response is split into low and
// high bands by a crossover splitterFactory constructs, with the high
// band scaled by orderHFGain; otherwise the full band is scaled by
// orderHFGain and accumulated directly.
func BuildBFormatHrtf(store *HrtfStore, state *DirectHrtfState, points []AngularPoint, matrix [][]float64, orderHFGain [4]float64, splitterFactory BandSplitterFactory, dualBand bool) error {
	if len(points) == 0 {
		return errors.New("hrtf: BuildBFormatHrtf requires at least one sample point")
	}
	if len(matrix) != len(points) {
		return errors.Errorf("hrtf: matrix has %d rows, want %d (one per point)", len(matrix), len(points))
	}
	n := len(state.Coeffs)
	for p, row := range matrix {
		if len(row) != n {
			return errors.Errorf("hrtf: matrix row %d has %d gains, want %d (one per channel)", p, len(row), n)
		}
	}
	accumLeft := make([][]float64, n)
	accumRight := make([][]float64, n)
	for i := range accumLeft {
		accumLeft[i] = make([]float64, HRIRLength)
		accumRight[i] = make([]float64, HRIRLength)
	}

	baseDelay := 0
	if dualBand {
		baseDelay = dualBandDelay
	}

	// Step 1: sample the nearest field at every point, tracking the
	// global minimum and maximum raw (fixed-point) delay across both
	// ears and all points.
	type sample struct {
		left, right [HRIRLength]float64
		l, r        float64
	}
	samples := make([]sample, len(points))
	minDelay := math.Inf(1)
	maxDelay := math.Inf(-1)
	for p, pt := range points {
		left, right, l, r := blendFirstField(store, pt.Elev, pt.Azim)
		samples[p] = sample{left: left, right: right, l: l, r: r}
		for _, d := range [2]float64{l, r} {
			if d < minDelay {
				minDelay = d
			}
			if d > maxDelay {
				maxDelay = d
			}
		}
	}

	for p, s := range samples {
		// Step 2: align every point's delay to the common minimum.
		ldelay := delayRound(s.l-minDelay) + baseDelay
		rdelay := delayRound(s.r-minDelay) + baseDelay

		if dualBand {
			accumulateDualBand(accumLeft, accumRight, matrix[p], orderHFGain, splitterFactory, store.SampleRate, s.left[:], s.right[:], ldelay, rdelay)
		} else {
			accumulateSingleBand(accumLeft, accumRight, matrix[p], orderHFGain, s.left[:], s.right[:], ldelay, rdelay)
		}
	}

	for i := range state.Coeffs {
		for j := 0; j < HRIRLength; j++ {
			state.Coeffs[i][j][0] = float32(accumLeft[i][j])
			state.Coeffs[i][j][1] = float32(accumRight[i][j])
		}
	}

	// Step 5: finalisation.
	maxDelay -= minDelay
	irsize := int(store.IrSize) + 2*baseDelay
	if irsize > HRIRLength {
		irsize = HRIRLength
	}
	maxLength := delayRound(maxDelay) + irsize
	if maxLength > HRIRLength {
		maxLength = HRIRLength
	}
	if rem := maxLength % ModIRSize; rem != 0 {
		maxLength += ModIRSize - rem
		if maxLength > HRIRLength {
			maxLength = HRIRLength
		}
	}
	state.IrSize = uint32(maxLength)

	return nil
}

// accumulateSingleBand implements §4.7 step 3: a plain delay-shifted
// accumulation of one point's impulse response into every output channel's
// float64 accumulator.
func accumulateSingleBand(accumLeft, accumRight [][]float64, gains []float64, orderHFGain [4]float64, left, right []float64, ldelay, rdelay int) {
	maxd := ldelay
	if rdelay > maxd {
		maxd = rdelay
	}
	limit := HRIRLength - maxd
	for i := range accumLeft {
		mult := orderHFGain[ambiChannelOrder[i]] * gains[i]
		floats.AddScaled(accumLeft[i][ldelay:ldelay+limit], mult, left[:limit])
		floats.AddScaled(accumRight[i][rdelay:rdelay+limit], mult, right[:limit])
	}
}

// accumulateDualBand implements §4.7 step 4: the phase-compensated
// two-band accumulation. The impulse response is reversed, run through
// the splitter's all-pass section, and reversed again before the actual
// low/high split, so the bands it produces carry the same phase as the
// original (un-split) response; the result is embedded in the last
// quarter of a 4*HRIRLength scratch buffer so the delay alignment can be
// applied as a read offset instead of a second shift of the IR itself.
func accumulateDualBand(accumLeft, accumRight [][]float64, gains []float64, orderHFGain [4]float64, factory BandSplitterFactory, sampleRate uint32, left, right []float64, ldelay, rdelay int) {
	freq := crossoverFreq / float64(sampleRate)

	loL, hiL := phaseCompensatedSplit(factory(freq), left)
	loR, hiR := phaseCompensatedSplit(factory(freq), right)

	const quarter = 3 * HRIRLength
	band := make([]float64, HRIRLength)
	for i := range accumLeft {
		mult := gains[i]
		hfgain := orderHFGain[ambiChannelOrder[i]]

		for j := 0; j < HRIRLength; j++ {
			band[j] = hiL[quarter-ldelay+j]*hfgain + loL[quarter-ldelay+j]
		}
		floats.AddScaled(accumLeft[i], mult, band)

		for j := 0; j < HRIRLength; j++ {
			band[j] = hiR[quarter-rdelay+j]*hfgain + loR[quarter-rdelay+j]
		}
		floats.AddScaled(accumRight[i], mult, band)
	}
}

// phaseCompensatedSplit runs the reverse-allpass-reverse trick of §4.7 on
// ir (length HRIRLength) and band-splits the result into a 4*HRIRLength
// buffer with the response embedded in its last quarter.
func phaseCompensatedSplit(splitter BandSplitter, ir []float64) (lo, hi []float64) {
	reversed := make([]float64, len(ir))
	for i, v := range ir {
		reversed[len(ir)-1-i] = v
	}

	splitter.Clear()
	splitter.ApplyAllpass(reversed)

	compensated := make([]float64, len(reversed))
	for i, v := range reversed {
		compensated[len(reversed)-1-i] = v
	}

	tmp := make([]float64, 4*HRIRLength)
	copy(tmp[3*HRIRLength:], compensated)

	lo = make([]float64, 4*HRIRLength)
	hi = make([]float64, 4*HRIRLength)
	splitter.Clear()
	splitter.Process(lo, hi, tmp)
	return lo, hi
}

// delayRound rounds a fixed-point (FRACONE-scaled) delay to the nearest
// integer sample count.
func delayRound(d float64) int {
	return int(math.Floor((d + HRIRDelayFracHalf) / HRIRDelayFracOne))
}

// blendFirstField bilinearly blends store's first field at elev/azim
// (radians), the way GetHrtfCoeffs does for a point-source query, but
// without the spread/dirfact/pass-through terms a directional bake has
// no use for: every weight is purely positional.
func blendFirstField(store *HrtfStore, elev, azim float64) (left, right [HRIRLength]float64, l, r float64) {
	evcount := int(store.Fields[0].EvCount)
	evIdx, evBlend := gridIndex(elev+math.Pi/2, math.Pi, evcount)
	evIdx1 := evIdx + 1
	if evIdx1 > evcount-1 {
		evIdx1 = evcount - 1
	}

	elev0 := store.Elevs[evIdx]
	elev1 := store.Elevs[evIdx1]

	az0Idx, az0Blend := azimuthIndex(azim, int(elev0.AzCount))
	az1Idx, az1Blend := azimuthIndex(azim, int(elev1.AzCount))

	ir00 := int(elev0.IrOffset) + az0Idx
	ir01 := int(elev0.IrOffset) + (az0Idx+1)%int(elev0.AzCount)
	ir10 := int(elev1.IrOffset) + az1Idx
	ir11 := int(elev1.IrOffset) + (az1Idx+1)%int(elev1.AzCount)

	corners := [4]gridCorner{
		{ir00, (1 - evBlend) * (1 - az0Blend)},
		{ir01, (1 - evBlend) * az0Blend},
		{ir10, evBlend * (1 - az1Blend)},
		{ir11, evBlend * az1Blend},
	}

	irSize := int(store.IrSize)
	for _, c := range corners {
		src := &store.Coeffs[c.ir]
		for j := 0; j < irSize; j++ {
			left[j] += c.w * float64(src[j][0])
			right[j] += c.w * float64(src[j][1])
		}
		l += c.w * float64(store.Delays[c.ir][0])
		r += c.w * float64(store.Delays[c.ir][1])
	}
	return left, right, l, r
}
