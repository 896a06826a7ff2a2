/*
NAME
  resample_test.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package resample

import (
	"math"
	"testing"
)

func TestUnityRatioIsNearIdentity(t *testing.T) {
	in := make([]float64, 64)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * float64(i) / 16)
	}
	out := make([]float64, 64)

	p := New()
	p.Init(44100, 44100)
	p.Process(in, out)

	for i := halfTaps + 1; i < len(in)-halfTaps-1; i++ {
		if math.Abs(out[i]-in[i]) > 0.05 {
			t.Errorf("out[%d] = %v, want close to in[%d] = %v", i, out[i], i, in[i])
		}
	}
}

func TestDoubleRateKeepsImpulseEnergy(t *testing.T) {
	in := make([]float64, 8)
	in[0] = 1 // unit impulse

	out := make([]float64, 16)
	p := New()
	p.Init(22050, 44100)
	p.Process(in, out)

	// Energy should be roughly preserved by the interpolation (impulse
	// response of the kernel centred near the original impulse).
	var energy float64
	for _, v := range out {
		energy += v * v
	}
	if energy < 0.1 {
		t.Errorf("resampled impulse carries almost no energy: %v", energy)
	}
}

func TestOutOfBoundsTapsAreIgnored(t *testing.T) {
	in := []float64{1, 1, 1}
	out := make([]float64, 3)
	p := New()
	p.Init(8000, 8000)
	// Should not panic despite requesting taps beyond the buffer edges.
	p.Process(in, out)
}
