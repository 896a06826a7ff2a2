/*
NAME
  query.go

DESCRIPTION
  query.go implements the point-source query engine of §4.6: bilinear
  interpolation across the nearest field's elevation/azimuth grid,
  scaled by a directional weight derived from the requested spread, with
  an omni pass-through term mixed in for the undirected remainder.

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

import "math"

// gridCorner is one interpolation corner: the IR index it reads from and
// its bilinear weight.
type gridCorner struct {
	ir int
	w  float64
}

// GetHrtfCoeffs fills coeffs and delays with the point-source HRTF taps
// for a source at elev/azim (radians) and distance (metres), spread
// (radians, [0, 2π]) wide. coeffs is zeroed and rewritten in full;
// delays holds one integer-sample delay per ear.
func GetHrtfCoeffs(store *HrtfStore, elev, azim, distance, spread float32, coeffs *[HRIRLength][2]float32, delays *[2]int) {
	dirfact := 1 - float64(spread)/(2*math.Pi)

	fieldIdx, ebase := store.selectField(distance)
	evcount := int(store.Fields[fieldIdx].EvCount)

	evIdx, evBlend := gridIndex(float64(elev)+math.Pi/2, math.Pi, evcount)
	evIdx1 := evIdx + 1
	if evIdx1 > evcount-1 {
		evIdx1 = evcount - 1
	}

	elev0 := store.Elevs[ebase+evIdx]
	elev1 := store.Elevs[ebase+evIdx1]

	az0Idx, az0Blend := azimuthIndex(float64(azim), int(elev0.AzCount))
	az1Idx, az1Blend := azimuthIndex(float64(azim), int(elev1.AzCount))

	ir00 := int(elev0.IrOffset) + az0Idx
	ir01 := int(elev0.IrOffset) + (az0Idx+1)%int(elev0.AzCount)
	ir10 := int(elev1.IrOffset) + az1Idx
	ir11 := int(elev1.IrOffset) + (az1Idx+1)%int(elev1.AzCount)

	corners := [4]gridCorner{
		{ir00, (1 - evBlend) * (1 - az0Blend) * dirfact},
		{ir01, (1 - evBlend) * az0Blend * dirfact},
		{ir10, evBlend * (1 - az1Blend) * dirfact},
		{ir11, evBlend * az1Blend * dirfact},
	}

	for c := 0; c < 2; c++ {
		var sum float64
		for _, corner := range corners {
			sum += corner.w * float64(store.Delays[corner.ir][c])
		}
		delays[c] = int(math.Floor(sum / HRIRDelayFracOne))
	}

	for j := range coeffs {
		coeffs[j][0] = 0
		coeffs[j][1] = 0
	}
	coeffs[0][0] = PassthruCoeff * float32(1-dirfact)
	coeffs[0][1] = PassthruCoeff * float32(1-dirfact)

	irSize := int(store.IrSize)
	for _, corner := range corners {
		w := float32(corner.w)
		src := &store.Coeffs[corner.ir]
		for j := 0; j < irSize; j++ {
			coeffs[j][0] += w * src[j][0]
			coeffs[j][1] += w * src[j][1]
		}
	}
}

// gridIndex maps a biased angle (already shifted to be non-negative over
// [0, span]) onto count equally spaced grid rows, clamping the index to
// the last row and returning the fractional blend toward the next one.
func gridIndex(biased, span float64, count int) (idx int, blend float64) {
	x := biased * float64(count-1) / span
	f := math.Floor(x)
	idx = int(f)
	if idx < 0 {
		idx = 0
	}
	if idx > count-1 {
		idx = count - 1
	}
	return idx, x - f
}

// azimuthIndex maps az (radians, any sign) onto count equally spaced
// columns wrapping at 2π, per §4.6's "+2π bias guarantees non-negativity"
// rule.
func azimuthIndex(az float64, count int) (idx int, blend float64) {
	x := (2*math.Pi + az) * float64(count) / (2 * math.Pi)
	f := math.Floor(x)
	idx = int(f) % count
	if idx < 0 {
		idx += count
	}
	return idx, x - f
}
