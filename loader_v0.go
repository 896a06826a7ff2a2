/*
NAME
  loader_v0.go

DESCRIPTION
  loader_v0.go parses the MinPHR00 format: a single field at distance 0,
  one elevation table given as offsets into a flat IR array, left-channel
  only (mirrored to the right ear after parsing), integer sample delays.

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
	"github.com/ausocean/hrtf/internal/bread"
	"github.com/pkg/errors"
)

// loadV0 parses the body of a MinPHR00 file (the magic has already been
// consumed).
func loadV0(r *bread.Reader) (*RawStore, error) {
	rate, err := r.U32()
	if err != nil {
		return nil, errors.Wrap(err, "rate")
	}
	irCount, err := r.U16()
	if err != nil {
		return nil, errors.Wrap(err, "irCount")
	}
	irSize, err := r.U16()
	if err != nil {
		return nil, errors.Wrap(err, "irSize")
	}
	if irSize < MinIRSize || irSize > MaxIRSize {
		return nil, errors.Wrapf(ErrBounds, "irSize %d out of range [%d,%d]", irSize, MinIRSize, MaxIRSize)
	}
	evCount, err := r.U8()
	if err != nil {
		return nil, errors.Wrap(err, "evCount")
	}
	if int(evCount) < MinEVCount || int(evCount) > MaxEVCount {
		return nil, errors.Wrapf(ErrBounds, "evCount %d out of range [%d,%d]", evCount, MinEVCount, MaxEVCount)
	}

	evOffset := make([]uint16, evCount)
	for i := range evOffset {
		evOffset[i], err = r.U16()
		if err != nil {
			return nil, errors.Wrapf(err, "evOffset[%d]", i)
		}
	}
	for i := 1; i < len(evOffset); i++ {
		if evOffset[i] <= evOffset[i-1] {
			return nil, errors.Wrapf(ErrMonotonic, "evOffset[%d]=%d not greater than evOffset[%d]=%d", i, evOffset[i], i-1, evOffset[i-1])
		}
	}
	if len(evOffset) > 0 && evOffset[len(evOffset)-1] >= irCount {
		return nil, errors.Wrapf(ErrBounds, "evOffset.back()=%d must be < irCount=%d", evOffset[len(evOffset)-1], irCount)
	}

	azCounts := make([]uint8, evCount)
	for i := range azCounts {
		var next uint16
		if i+1 < len(evOffset) {
			next = evOffset[i+1]
		} else {
			next = irCount
		}
		az := next - evOffset[i]
		if int(az) < MinAZCount || int(az) > MaxAZCount {
			return nil, errors.Wrapf(ErrBounds, "elevation %d azCount %d out of range [%d,%d]", i, az, MinAZCount, MaxAZCount)
		}
		azCounts[i] = uint8(az)
	}

	coeffs := make([][HRIRLength][2]float32, irCount)
	for i := 0; i < int(irCount); i++ {
		left := make([]float32, irSize)
		for j := range left {
			v, err := r.I16()
			if err != nil {
				return nil, errors.Wrapf(err, "coeffs[%d][%d]", i, j)
			}
			left[j] = float32(v) / 32768
		}
		coeffs[i] = padIR(left, nil)
	}

	delays := make([][2]uint8, irCount)
	for i := range delays {
		d, err := r.U8()
		if err != nil {
			return nil, errors.Wrapf(err, "delays[%d]", i)
		}
		fixed := uint16(d) << HRIRDelayFracBits
		if fixed > MaxHRIRDelay*HRIRDelayFracOne {
			return nil, errors.Wrapf(ErrBounds, "delays[%d]=%d exceeds max %d samples", i, d, MaxHRIRDelay)
		}
		delays[i][0] = uint8(fixed)
	}

	raw := &RawStore{
		SampleRate: rate,
		IrSize:     irSize,
		Fields:     []RawField{{DistanceMM: 0, AzCounts: azCounts}},
		Coeffs:     coeffs,
		Delays:     delays,
	}
	mirrorLeftOnly(raw)
	return raw, nil
}
