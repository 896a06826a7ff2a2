/*
NAME
  hrtf.go

DESCRIPTION
  hrtf.go declares the structural constants shared by every stage of the
  HRTF data subsystem: binary format bounds, the fixed-point delay
  encoding, and the padded buffer lengths the query engines rely on.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package hrtf provides loading, conditioning, caching and querying of
// head-related transfer function (HRTF) data sets for a spatial audio
// renderer. It parses the three MinPHR binary formats into a uniform
// in-memory HrtfStore, reference-counts loaded stores in a shared cache,
// and synthesises per-direction filter taps for both point-source and
// ambisonic (B-format) rendering.
package hrtf

import "math"

// Structural bounds on the binary HRTF formats (§3 of the data model).
const (
	MinIRSize = 8
	MaxIRSize = 512
	ModIRSize = 2

	MinFDCount = 1
	MaxFDCount = 16

	MinFDDistance = 50   // millimetres
	MaxFDDistance = 2500 // millimetres

	MinEVCount = 5
	MaxEVCount = 181

	MinAZCount = 1
	MaxAZCount = 255
)

// HRIRLength is the padded buffer length every stored and synthesised IR
// occupies, an upper bound on MaxIRSize used so that bilinear blending and
// band-splitting never have to special-case a shorter tail.
const HRIRLength = 512

// HRTFHistoryLength bounds the delay line a renderer keeps per ear; it is
// large enough to hold MaxHRIRDelay of history plus one block of lookahead.
const HRTFHistoryLength = 64

// MaxHRIRDelay is the largest integer-sample delay a tap may carry.
const MaxHRIRDelay = HRTFHistoryLength - 1

// Fixed-point encoding of per-tap delays, in units of 1/HRIRDelayFracOne
// samples (a Q6.2 fixed-point format).
const (
	HRIRDelayFracBits = 2
	HRIRDelayFracOne  = 1 << HRIRDelayFracBits
	HRIRDelayFracHalf = HRIRDelayFracOne / 2
)

// PassthruCoeff is the amplitude of the direct, non-directional pass-through
// tap mixed in proportion to the requested spread.
var PassthruCoeff = float32(math.Sqrt(0.5))

func init() {
	// Invariant from §3: delays must fit in a byte once scaled to
	// fixed-point.
	if MaxHRIRDelay*HRIRDelayFracOne >= 256 {
		panic("hrtf: MaxHRIRDelay*HRIRDelayFracOne must fit in a byte")
	}
}
