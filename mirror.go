/*
NAME
  mirror.go

DESCRIPTION
  mirror.go implements the left-to-right ear mirroring the V0 and V1
  loaders always apply, and the V2 loader applies when a file is
  recorded left-only (§4.2).

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

// mirrorElevation fills in the right-channel IR and delay of one
// elevation's azCount IRs from its left channel, reflecting azimuth index
// j to ((azCount-j) mod azCount). This implements the symmetry of a head
// across the median plane: a source at azimuth j on the left ear sounds
// the same as the mirror-image source at azimuth -j on the right ear.
//
// Every destination write reads from channel 0 only, which this function
// never writes, so processing azimuths in any order is safe even though
// the index mapping is its own inverse.
func mirrorElevation(coeffs [][HRIRLength][2]float32, delays [][2]uint8, irOffset, azCount int) {
	for j := 0; j < azCount; j++ {
		src := irOffset + j
		dst := irOffset + (azCount-j)%azCount
		for s := 0; s < HRIRLength; s++ {
			coeffs[dst][s][1] = coeffs[src][s][0]
		}
		delays[dst][1] = delays[src][0]
	}
}

// mirrorLeftOnly walks every field of raw and mirrors each of its
// elevations in place.
func mirrorLeftOnly(raw *RawStore) {
	irOffset := 0
	for _, f := range raw.Fields {
		for _, az := range f.AzCounts {
			mirrorElevation(raw.Coeffs, raw.Delays, irOffset, int(az))
			irOffset += int(az)
		}
	}
}
