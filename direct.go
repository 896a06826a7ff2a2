/*
NAME
  direct.go

DESCRIPTION
  direct.go implements DirectHrtfState, the precomputed ambisonic decode
  BuildBFormatHrtf bakes its channel responses into.

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

import "fmt"

// DirectHrtfState is a precomputed ambisonic decode: one stereo impulse
// response per output channel, each HRIRLength samples long. It is
// allocated once by NewDirectHrtfState and filled in by BuildBFormatHrtf;
// a renderer owns it for the lifetime of the ambisonic decoder it backs.
type DirectHrtfState struct {
	// IrSize is the response length BuildBFormatHrtf computes: the spread
	// of the aligned delays plus the store's IR size (and twice the
	// dual-band delay), rounded up to a multiple of ModIRSize and capped
	// at HRIRLength.
	IrSize uint32

	// Coeffs holds one [HRIRLength][2]float32 stereo response per
	// ambisonic channel.
	Coeffs [][HRIRLength][2]float32
}

// NewDirectHrtfState allocates a DirectHrtfState for numChans ambisonic
// channels, matching the fixed first-16-channel ACN table BuildBFormatHrtf
// uses for per-order HF gain (§4.7).
func NewDirectHrtfState(numChans int) (*DirectHrtfState, error) {
	if numChans <= 0 || numChans > maxAmbiChannels {
		return nil, fmt.Errorf("hrtf: invalid ambisonic channel count %d (want 1..%d)", numChans, maxAmbiChannels)
	}
	return &DirectHrtfState{
		Coeffs: make([][HRIRLength][2]float32, numChans),
	}, nil
}

// maxAmbiChannels is the size of the fixed ACN order table in §4.7: up to
// 3rd-order ambisonics, 16 channels.
const maxAmbiChannels = 16

// ambiChannelOrder maps an ACN channel index (0..15) to its ambisonic
// order (0..3). Extending beyond 3rd order requires extending this table;
// the store itself carries no notion of ambisonic order.
var ambiChannelOrder = [maxAmbiChannels]int{
	0,
	1, 1, 1,
	2, 2, 2, 2, 2,
	3, 3, 3, 3, 3, 3, 3,
}
