/*
NAME
  conditioner.go

DESCRIPTION
  conditioner.go implements §4.4: resampling every IR from the file's
  recorded rate to the device rate when they differ, rescaling fixed-
  point delays to match, recomputing and rounding the effective IR size,
  and applying an optional hrtf-size override. It runs once, in the
  loader's single-owner phase, before a store is published to the cache.

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

// Condition mutates s in place to match devRate and cfg, per §4.4. It
// must be called exactly once, before s is inserted into a cache, and
// never again on a cache hit (the "Open concurrency subtlety" of §5).
func Condition(s *HrtfStore, devRate uint32, cfg Config, resampler Resampler) {
	if s.SampleRate != devRate {
		resampleStore(s, devRate, resampler)
	}

	if cfg.HRTFSize > 0 && cfg.HRTFSize < uint(s.IrSize) {
		size := cfg.HRTFSize
		if size < MinIRSize {
			size = MinIRSize
		}
		size -= size % ModIRSize
		s.IrSize = uint16(size)
		for i := range s.Coeffs {
			for j := size; j < HRIRLength; j++ {
				s.Coeffs[i][j] = [2]float32{}
			}
		}
	}
}

// resampleStore resamples every IR (both channels) from s.SampleRate to
// devRate, rescales every delay to match, and recomputes s.IrSize.
func resampleStore(s *HrtfStore, devRate uint32, resampler Resampler) {
	srcRate := s.SampleRate
	resampler.Init(int(srcRate), int(devRate))

	inL := make([]float64, HRIRLength)
	inR := make([]float64, HRIRLength)
	outL := make([]float64, HRIRLength)
	outR := make([]float64, HRIRLength)
	for i := range s.Coeffs {
		for j := 0; j < HRIRLength; j++ {
			inL[j] = float64(s.Coeffs[i][j][0])
			inR[j] = float64(s.Coeffs[i][j][1])
		}
		resampler.Process(inL, outL)
		resampler.Process(inR, outR)
		for j := 0; j < HRIRLength; j++ {
			s.Coeffs[i][j][0] = float32(outL[j])
			s.Coeffs[i][j][1] = float32(outR[j])
		}
	}

	for i := range s.Delays {
		for c := 0; c < 2; c++ {
			s.Delays[i][c] = rescaleDelay(s.Delays[i][c], srcRate, devRate)
		}
	}

	newSize := (uint64(s.IrSize)*uint64(devRate) + uint64(srcRate) - 1) / uint64(srcRate)
	if newSize > HRIRLength {
		newSize = HRIRLength
	}
	if rem := newSize % ModIRSize; rem != 0 {
		newSize += ModIRSize - rem
		if newSize > HRIRLength {
			newSize = HRIRLength
		}
	}
	for i := range s.Coeffs {
		for j := newSize; j < HRIRLength; j++ {
			s.Coeffs[i][j][0] = 0
			s.Coeffs[i][j][1] = 0
		}
	}

	s.IrSize = uint16(newSize)
	s.SampleRate = devRate
}

// rescaleDelay rescales a fixed-point delay from srcRate to dstRate,
// rounding to the nearest fixed-point unit and saturating at
// MaxHRIRDelay*HRIRDelayFracOne.
func rescaleDelay(delay uint8, srcRate, dstRate uint32) uint8 {
	num := uint64(delay)*uint64(dstRate) + uint64(srcRate)/2
	rescaled := num / uint64(srcRate)
	const max = MaxHRIRDelay * HRIRDelayFracOne
	if rescaled > max {
		rescaled = max
	}
	return uint8(rescaled)
}
