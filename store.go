/*
NAME
  store.go

DESCRIPTION
  store.go implements the store builder (§4.3): it takes the validated,
  format-specific intermediate a V0/V1/V2 loader produces and assembles
  the uniform, immutable HrtfStore the conditioner and query engines
  operate on, checking every cross-cutting invariant in §3 along the way.

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
	"sync/atomic"

	"github.com/pkg/errors"
)

// Field is one field-depth record: the distance IRs in it were measured
// at, and the elevation count of that field.
type Field struct {
	Distance float32 // metres
	EvCount  uint8
}

// Elevation is one elevation record within a field: its azimuth count and
// the offset of its first IR within the store's coeffs/delays arrays.
type Elevation struct {
	AzCount  uint16
	IrOffset uint16
}

// HrtfStore is one immutable HRTF data set at a chosen sample rate. It is
// built once by CreateHrtfStore, optionally rewritten in place by the
// conditioner before publication to the cache, and shared read-only
// thereafter (§5).
type HrtfStore struct {
	SampleRate uint32
	IrSize     uint16
	Fields     []Field
	Elevs      []Elevation

	// Coeffs holds one HRIRLength-sample stereo tap per IR; entries
	// beyond IrSize are zero (invariant 4 of §8).
	Coeffs [][HRIRLength][2]float32

	// Delays holds one fixed-point (1/HRIRDelayFracOne samples) delay
	// per ear per IR; every value is <= MaxHRIRDelay*HRIRDelayFracOne.
	Delays [][2]uint8

	ref int32 // atomic; see IncRef/DecRef
}

// RawField is the format-specific intermediate a loader produces for one
// field depth: the distance in millimetres as stored in the file, and
// one azimuth count per elevation.
type RawField struct {
	DistanceMM uint16
	AzCounts   []uint8
}

// RawStore is the common intermediate every V0/V1/V2 loader produces.
// CreateHrtfStore validates it against §3's invariants and assembles the
// final HrtfStore.
type RawStore struct {
	SampleRate uint32
	IrSize     uint16
	Fields     []RawField

	// Coeffs and Delays are already ordered field-major, then
	// elevation-major, then azimuth-major, matching the Fields/AzCounts
	// layout above; mirroring and V2 field reordering have already been
	// applied by the loader. Coeffs entries are zero-padded from IrSize
	// to HRIRLength.
	Coeffs [][HRIRLength][2]float32
	Delays [][2]uint8
}

// irCount returns the total number of IRs RawStore describes.
func (r *RawStore) irCount() int {
	n := 0
	for _, f := range r.Fields {
		for _, az := range f.AzCounts {
			n += int(az)
		}
	}
	return n
}

// CreateHrtfStore validates raw against the structural invariants of §3
// and assembles the immutable HrtfStore, with its reference count
// initialised to 1. It is the loader's last step before handing the
// store to the conditioner.
func CreateHrtfStore(raw *RawStore) (*HrtfStore, error) {
	if len(raw.Fields) < MinFDCount || len(raw.Fields) > MaxFDCount {
		return nil, errors.Wrapf(ErrBounds, "field count %d out of range [%d, %d]", len(raw.Fields), MinFDCount, MaxFDCount)
	}
	if raw.IrSize < MinIRSize || raw.IrSize > MaxIRSize || raw.IrSize%ModIRSize != 0 {
		return nil, errors.Wrapf(ErrBounds, "IR size %d invalid (range [%d,%d], multiple of %d)", raw.IrSize, MinIRSize, MaxIRSize, ModIRSize)
	}

	nIr := raw.irCount()
	if len(raw.Coeffs) != nIr || len(raw.Delays) != nIr {
		return nil, errors.Errorf("hrtf: raw store IR count mismatch: fields describe %d, coeffs/delays have %d/%d", nIr, len(raw.Coeffs), len(raw.Delays))
	}

	fields := make([]Field, len(raw.Fields))
	var elevs []Elevation
	var lastDistance float32 = -1
	irOffset := uint16(0)
	for fi, rf := range raw.Fields {
		// V0/V1 are legacy single-field formats that never carried a
		// distance in the file; loaders for those formats emit the
		// sentinel DistanceMM==0, which is exempt from the file-level
		// distance bound (only a V2 field with a real recorded distance
		// is checked against it).
		if rf.DistanceMM != 0 && (rf.DistanceMM < MinFDDistance || rf.DistanceMM > MaxFDDistance) {
			return nil, errors.Wrapf(ErrBounds, "field %d distance %dmm out of range [%d,%d]", fi, rf.DistanceMM, MinFDDistance, MaxFDDistance)
		}
		distance := float32(rf.DistanceMM) / 1000
		if distance <= lastDistance {
			return nil, errors.Wrapf(ErrMonotonic, "field %d distance %v not strictly greater than preceding %v", fi, distance, lastDistance)
		}
		lastDistance = distance

		if len(rf.AzCounts) < MinEVCount || len(rf.AzCounts) > MaxEVCount {
			return nil, errors.Wrapf(ErrBounds, "field %d elevation count %d out of range [%d,%d]", fi, len(rf.AzCounts), MinEVCount, MaxEVCount)
		}

		fields[fi] = Field{Distance: distance, EvCount: uint8(len(rf.AzCounts))}

		for ei, az := range rf.AzCounts {
			if int(az) < MinAZCount || int(az) > MaxAZCount {
				return nil, errors.Wrapf(ErrBounds, "field %d elevation %d azimuth count %d out of range [%d,%d]", fi, ei, az, MinAZCount, MaxAZCount)
			}
			elevs = append(elevs, Elevation{AzCount: uint16(az), IrOffset: irOffset})
			irOffset += uint16(az)
		}
	}

	for i := range raw.Delays {
		for c := 0; c < 2; c++ {
			if raw.Delays[i][c] > MaxHRIRDelay*HRIRDelayFracOne {
				return nil, errors.Wrapf(ErrBounds, "IR %d channel %d delay %d exceeds max %d", i, c, raw.Delays[i][c], MaxHRIRDelay*HRIRDelayFracOne)
			}
		}
	}

	s := &HrtfStore{
		SampleRate: raw.SampleRate,
		IrSize:     raw.IrSize,
		Fields:     fields,
		Elevs:      elevs,
		Coeffs:     raw.Coeffs,
		Delays:     raw.Delays,
		ref:        1,
	}
	return s, nil
}

// IncRef atomically increments the store's reference count.
func (s *HrtfStore) IncRef() int32 {
	return atomic.AddInt32(&s.ref, 1)
}

// DecRef atomically decrements the store's reference count and returns
// the new value. Callers that observe 0 should trigger a cache sweep
// (see Cache.DecRef), since a bare HrtfStore has no sweep of its own.
func (s *HrtfStore) DecRef() int32 {
	return atomic.AddInt32(&s.ref, -1)
}

// RefCount atomically reads the store's reference count.
func (s *HrtfStore) RefCount() int32 {
	return atomic.LoadInt32(&s.ref)
}

// ebase returns the index into s.Elevs of the first elevation of field
// index fi, the cumulative elevation count of preceding fields.
func (s *HrtfStore) ebase(fi int) int {
	n := 0
	for i := 0; i < fi; i++ {
		n += int(s.Fields[i].EvCount)
	}
	return n
}

// selectField implements the field-selection walk of §4.6: fields are
// stored nearest-to-farthest, and the walk advances from the nearest
// field toward farther ones for as long as the next field's recorded
// distance does not exceed the query, landing on the farthest field at or
// inside the query distance, or on the nearest field if the query is
// closer than every recorded distance.
func (s *HrtfStore) selectField(distance float32) (fieldIdx, ebase int) {
	fi := 0
	for fi < len(s.Fields)-1 && distance >= s.Fields[fi+1].Distance {
		fi++
	}
	return fi, s.ebase(fi)
}
