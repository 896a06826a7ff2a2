/*
NAME
  mirror_test.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package hrtf

import "testing"

// TestMirrorElevationReflectsAzimuthAcrossMedianPlane exercises S3: an
// elevation with azCount=8 whose left-channel IRs differ per azimuth index
// must have, after mirroring, coeffs[offset+3][j][1] == coeffs[offset+5][j][0]
// for every sample j, since (8-3) mod 8 == 5.
func TestMirrorElevationReflectsAzimuthAcrossMedianPlane(t *testing.T) {
	const azCount = 8
	const offset = 0
	coeffs := make([][HRIRLength][2]float32, azCount)
	delays := make([][2]uint8, azCount)
	for az := 0; az < azCount; az++ {
		for j := 0; j < HRIRLength; j++ {
			coeffs[az][j][0] = float32(az*100 + j)
		}
		delays[az][0] = uint8(az)
	}

	mirrorElevation(coeffs, delays, offset, azCount)

	for j := 0; j < HRIRLength; j++ {
		if coeffs[offset+3][j][1] != coeffs[offset+5][j][0] {
			t.Fatalf("coeffs[3][%d][1] = %v, want coeffs[5][%d][0] = %v", j, coeffs[offset+3][j][1], j, coeffs[offset+5][j][0])
		}
	}
	if delays[offset+3][1] != delays[offset+5][0] {
		t.Errorf("delays[3][1] = %v, want delays[5][0] = %v", delays[offset+3][1], delays[offset+5][0])
	}
}

// TestMirrorElevationAzimuthZeroIsItsOwnMirror checks the fixed point of
// the (azCount-j) mod azCount mapping: azimuth 0 mirrors to itself.
func TestMirrorElevationAzimuthZeroIsItsOwnMirror(t *testing.T) {
	const azCount = 8
	coeffs := make([][HRIRLength][2]float32, azCount)
	delays := make([][2]uint8, azCount)
	coeffs[0][0][0] = 42
	delays[0][0] = 7

	mirrorElevation(coeffs, delays, 0, azCount)

	if coeffs[0][0][1] != 42 {
		t.Errorf("coeffs[0][0][1] = %v, want 42 (azimuth 0 mirrors to itself)", coeffs[0][0][1])
	}
	if delays[0][1] != 7 {
		t.Errorf("delays[0][1] = %v, want 7", delays[0][1])
	}
}

func TestMirrorLeftOnlyWalksEveryFieldAndElevation(t *testing.T) {
	raw := &RawStore{
		Fields: []RawField{
			{DistanceMM: 0, AzCounts: []uint8{2, 4}},
		},
	}
	n := 6
	raw.Coeffs = make([][HRIRLength][2]float32, n)
	raw.Delays = make([][2]uint8, n)
	for i := 0; i < n; i++ {
		raw.Coeffs[i][0][0] = float32(i + 1)
	}

	mirrorLeftOnly(raw)

	// First elevation: azCount=2, offset=0. Azimuth 0 -> mirror 0, azimuth
	// 1 -> mirror (2-1)%2=1; both are fixed points.
	if raw.Coeffs[0][0][1] != raw.Coeffs[0][0][0] {
		t.Errorf("elevation 0 azimuth 0 not self-mirrored")
	}
	// Second elevation: azCount=4, offset=2. Azimuth 1 (global index 3)
	// mirrors to (4-1)%4=3 (global index 5).
	if raw.Coeffs[3][0][1] != raw.Coeffs[5][0][0] {
		t.Errorf("coeffs[3][0][1] = %v, want coeffs[5][0][0] = %v", raw.Coeffs[3][0][1], raw.Coeffs[5][0][0])
	}
}
