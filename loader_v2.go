/*
NAME
  loader_v2.go

DESCRIPTION
  loader_v2.go parses the MinPHR02 format: one or more fields at
  explicit distances, 16- or 24-bit samples, and an optional second
  (right-ear) channel stored directly instead of mirrored. Fields with
  fdCount > 1 are sorted into ascending distance order (the distance
  the store and the query engine's field-selection walk require), and a
  left-only file is mirrored exactly as V0/V1 are.

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
	"sort"

	"github.com/ausocean/hrtf/internal/bread"
	"github.com/pkg/errors"
)

const (
	sampleS16 = 0
	sampleS24 = 1

	channelLeftOnly  = 0
	channelLeftRight = 1
)

// loadV2 parses the body of a MinPHR02 file (the magic has already been
// consumed).
func loadV2(r *bread.Reader) (*RawStore, error) {
	rate, err := r.U32()
	if err != nil {
		return nil, errors.Wrap(err, "rate")
	}
	sampleType, err := r.U8()
	if err != nil {
		return nil, errors.Wrap(err, "sampleType")
	}
	if sampleType != sampleS16 && sampleType != sampleS24 {
		return nil, errors.Wrapf(ErrBounds, "unknown sampleType %d", sampleType)
	}
	channelType, err := r.U8()
	if err != nil {
		return nil, errors.Wrap(err, "channelType")
	}
	if channelType != channelLeftOnly && channelType != channelLeftRight {
		return nil, errors.Wrapf(ErrBounds, "unknown channelType %d", channelType)
	}
	irSize8, err := r.U8()
	if err != nil {
		return nil, errors.Wrap(err, "irSize")
	}
	irSize := uint16(irSize8)
	if irSize < MinIRSize || irSize > MaxIRSize {
		return nil, errors.Wrapf(ErrBounds, "irSize %d out of range [%d,%d]", irSize, MinIRSize, MaxIRSize)
	}
	fdCount, err := r.U8()
	if err != nil {
		return nil, errors.Wrap(err, "fdCount")
	}
	if int(fdCount) < MinFDCount || int(fdCount) > MaxFDCount {
		return nil, errors.Wrapf(ErrBounds, "fdCount %d out of range [%d,%d]", fdCount, MinFDCount, MaxFDCount)
	}

	fields := make([]RawField, fdCount)
	irCounts := make([]int, fdCount)
	totalIr := 0
	for fi := range fields {
		distance, err := r.U16()
		if err != nil {
			return nil, errors.Wrapf(err, "field[%d].distance", fi)
		}
		if distance < MinFDDistance || distance > MaxFDDistance {
			return nil, errors.Wrapf(ErrBounds, "field %d distance %dmm out of range [%d,%d]", fi, distance, MinFDDistance, MaxFDDistance)
		}
		evCount, err := r.U8()
		if err != nil {
			return nil, errors.Wrapf(err, "field[%d].evCount", fi)
		}
		if int(evCount) < MinEVCount || int(evCount) > MaxEVCount {
			return nil, errors.Wrapf(ErrBounds, "field %d evCount %d out of range [%d,%d]", fi, evCount, MinEVCount, MaxEVCount)
		}
		azCounts := make([]uint8, evCount)
		irCount := 0
		for ei := range azCounts {
			az, err := r.U8()
			if err != nil {
				return nil, errors.Wrapf(err, "field[%d].azCount[%d]", fi, ei)
			}
			if int(az) < MinAZCount || int(az) > MaxAZCount {
				return nil, errors.Wrapf(ErrBounds, "field %d elevation %d azCount %d out of range [%d,%d]", fi, ei, az, MinAZCount, MaxAZCount)
			}
			azCounts[ei] = az
			irCount += int(az)
		}
		fields[fi] = RawField{DistanceMM: distance, AzCounts: azCounts}
		irCounts[fi] = irCount
		totalIr += irCount
	}

	coeffs := make([][HRIRLength][2]float32, totalIr)
	for i := 0; i < totalIr; i++ {
		left := make([]float32, irSize)
		var right []float32
		if channelType == channelLeftRight {
			right = make([]float32, irSize)
		}
		for j := 0; j < int(irSize); j++ {
			l, err := readSampleV2(r, sampleType)
			if err != nil {
				return nil, errors.Wrapf(err, "coeffs[%d][%d].left", i, j)
			}
			left[j] = l
			if channelType == channelLeftRight {
				rgt, err := readSampleV2(r, sampleType)
				if err != nil {
					return nil, errors.Wrapf(err, "coeffs[%d][%d].right", i, j)
				}
				right[j] = rgt
			}
		}
		coeffs[i] = padIR(left, right)
	}

	delays := make([][2]uint8, totalIr)
	for i := range delays {
		l, err := r.U8()
		if err != nil {
			return nil, errors.Wrapf(err, "delays[%d].left", i)
		}
		delays[i][0], err = fixedDelay(l)
		if err != nil {
			return nil, errors.Wrapf(err, "delays[%d].left", i)
		}
		if channelType == channelLeftRight {
			rgt, err := r.U8()
			if err != nil {
				return nil, errors.Wrapf(err, "delays[%d].right", i)
			}
			delays[i][1], err = fixedDelay(rgt)
			if err != nil {
				return nil, errors.Wrapf(err, "delays[%d].right", i)
			}
		}
	}

	raw := &RawStore{
		SampleRate: rate,
		IrSize:     irSize,
		Fields:     fields,
		Coeffs:     coeffs,
		Delays:     delays,
	}

	if channelType == channelLeftOnly {
		mirrorLeftOnly(raw)
	}

	if fdCount > 1 {
		sortFieldsByDistance(raw, irCounts)
	}

	return raw, nil
}

// readSampleV2 reads one coefficient sample in the given V2 sample
// encoding, normalised to [-1, 1).
func readSampleV2(r *bread.Reader, sampleType uint8) (float32, error) {
	if sampleType == sampleS24 {
		v, err := r.I24()
		if err != nil {
			return 0, err
		}
		return float32(v) / 8388608, nil
	}
	v, err := r.I16()
	if err != nil {
		return 0, err
	}
	return float32(v) / 32768, nil
}

// fixedDelay left-shifts a file-integer-sample delay into the store's
// fixed-point encoding, bounds-checking before the shift so an
// out-of-range file delay is reported instead of silently truncated.
func fixedDelay(d uint8) (uint8, error) {
	fixed := uint16(d) << HRIRDelayFracBits
	if fixed > MaxHRIRDelay*HRIRDelayFracOne {
		return 0, errors.Wrapf(ErrBounds, "delay %d exceeds max %d samples", d, MaxHRIRDelay)
	}
	return uint8(fixed), nil
}

// sortFieldsByDistance reorders raw's fields (and their associated
// coefficient/delay groups) into ascending distance order, the order
// CreateHrtfStore's strictly-increasing-distance invariant and the query
// engine's field-selection walk require, while preserving the internal
// azimuth/IR order within each field.
func sortFieldsByDistance(raw *RawStore, irCounts []int) {
	type group struct {
		field  RawField
		coeffs [][HRIRLength][2]float32
		delays [][2]uint8
	}
	groups := make([]group, len(raw.Fields))
	off := 0
	for i, f := range raw.Fields {
		n := irCounts[i]
		groups[i] = group{
			field:  f,
			coeffs: raw.Coeffs[off : off+n],
			delays: raw.Delays[off : off+n],
		}
		off += n
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].field.DistanceMM < groups[j].field.DistanceMM
	})

	fields := make([]RawField, len(groups))
	coeffs := make([][HRIRLength][2]float32, 0, off)
	delays := make([][2]uint8, 0, off)
	for i, g := range groups {
		fields[i] = g.field
		coeffs = append(coeffs, g.coeffs...)
		delays = append(delays, g.delays...)
	}
	raw.Fields = fields
	raw.Coeffs = coeffs
	raw.Delays = delays
}
