/*
NAME
  loader_v1.go

DESCRIPTION
  loader_v1.go parses the MinPHR01 format: a single field at distance 0,
  azimuth counts given directly per elevation, left-channel only
  (mirrored after parsing), integer sample delays.

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

// loadV1 parses the body of a MinPHR01 file (the magic has already been
// consumed).
func loadV1(r *bread.Reader) (*RawStore, error) {
	rate, err := r.U32()
	if err != nil {
		return nil, errors.Wrap(err, "rate")
	}
	irSize8, err := r.U8()
	if err != nil {
		return nil, errors.Wrap(err, "irSize")
	}
	irSize := uint16(irSize8)
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

	azCounts := make([]uint8, evCount)
	irCount := 0
	for i := range azCounts {
		az, err := r.U8()
		if err != nil {
			return nil, errors.Wrapf(err, "azCount[%d]", i)
		}
		if int(az) < MinAZCount || int(az) > MaxAZCount {
			return nil, errors.Wrapf(ErrBounds, "elevation %d azCount %d out of range [%d,%d]", i, az, MinAZCount, MaxAZCount)
		}
		azCounts[i] = az
		irCount += int(az)
	}

	coeffs := make([][HRIRLength][2]float32, irCount)
	for i := 0; i < irCount; i++ {
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
