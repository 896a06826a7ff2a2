/*
NAME
  bformat_test.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package hrtf

import (
	"math"
	"testing"

	"github.com/ausocean/hrtf/internal/bandsplit"
)

// makeImpulseStore builds a single-field, five-elevation, one-azimuth
// store whose every IR is a unit impulse at sample 0 with zero delay, so
// a bake's accumulation can be checked against simple closed forms.
func makeImpulseStore(t *testing.T, irSize uint16) *HrtfStore {
	t.Helper()
	raw := &RawStore{
		SampleRate: 44100,
		IrSize:     irSize,
		Fields:     []RawField{{DistanceMM: 0, AzCounts: []uint8{1, 1, 1, 1, 1}}},
		Coeffs:     make([][HRIRLength][2]float32, 5),
		Delays:     make([][2]uint8, 5),
	}
	for i := range raw.Coeffs {
		raw.Coeffs[i][0][0] = 1
		raw.Coeffs[i][0][1] = 1
	}
	s, err := CreateHrtfStore(raw)
	if err != nil {
		t.Fatalf("CreateHrtfStore() error = %v", err)
	}
	return s
}

func TestBuildBFormatHrtfSingleBandPlacesImpulseAtZeroDelay(t *testing.T) {
	s := makeImpulseStore(t, 8)
	state, err := NewDirectHrtfState(1)
	if err != nil {
		t.Fatalf("NewDirectHrtfState() error = %v", err)
	}

	points := []AngularPoint{{Elev: -math.Pi / 2, Azim: 0}}
	matrix := [][]float64{{1}}
	orderHFGain := [4]float64{1, 1, 1, 1}

	err = BuildBFormatHrtf(s, state, points, matrix, orderHFGain, nil, false)
	if err != nil {
		t.Fatalf("BuildBFormatHrtf() error = %v", err)
	}

	if state.Coeffs[0][0][0] != 1 || state.Coeffs[0][0][1] != 1 {
		t.Errorf("Coeffs[0][0] = %v, want [1 1]", state.Coeffs[0][0])
	}
	if state.IrSize != 8 {
		t.Errorf("IrSize = %v, want 8", state.IrSize)
	}
}

func TestBuildBFormatHrtfDualBandProducesFiniteOutput(t *testing.T) {
	s := makeImpulseStore(t, 8)
	state, err := NewDirectHrtfState(1)
	if err != nil {
		t.Fatalf("NewDirectHrtfState() error = %v", err)
	}

	points := []AngularPoint{{Elev: -math.Pi / 2, Azim: 0}}
	matrix := [][]float64{{1}}
	orderHFGain := [4]float64{1, 1, 1, 1}

	factory := func(freq float64) BandSplitter { return bandsplit.New(freq) }
	err = BuildBFormatHrtf(s, state, points, matrix, orderHFGain, factory, true)
	if err != nil {
		t.Fatalf("BuildBFormatHrtf() error = %v", err)
	}

	for j := 0; j < int(state.IrSize); j++ {
		for c := 0; c < 2; c++ {
			v := state.Coeffs[0][j][c]
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("Coeffs[0][%d][%d] = %v, want a finite value", j, c, v)
			}
		}
	}
}

func TestBuildBFormatHrtfRejectsMismatchedMatrix(t *testing.T) {
	s := makeImpulseStore(t, 8)
	state, err := NewDirectHrtfState(2)
	if err != nil {
		t.Fatalf("NewDirectHrtfState() error = %v", err)
	}

	points := []AngularPoint{{Elev: 0, Azim: 0}}
	matrix := [][]float64{{1}} // wrong width: state has 2 channels

	if err := BuildBFormatHrtf(s, state, points, matrix, [4]float64{}, nil, false); err == nil {
		t.Fatal("BuildBFormatHrtf() error = nil, want a mismatched-matrix error")
	}
}
