/*
NAME
  loader.go

DESCRIPTION
  loader.go dispatches on the eight-byte MinPHR magic to the matching
  V0/V1/V2 format loader and turns any read failure into the uniform
  "failed reading <file>" error the cache logs (§4.2, §7).

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
	"bytes"
	"io"

	"github.com/ausocean/hrtf/internal/bread"
	"github.com/pkg/errors"
)

const magicLen = 8

var (
	magicV0 = []byte("MinPHR00")
	magicV1 = []byte("MinPHR01")
	magicV2 = []byte("MinPHR02")
)

// ParseStore reads filename's magic and dispatches to the matching
// format loader, returning the common RawStore intermediate. name is used
// only to annotate errors.
func ParseStore(r io.Reader, name string) (*RawStore, error) {
	var magic [magicLen]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, errors.Wrapf(ErrShortRead, "failed reading %s: header", name)
	}

	br := bread.New(r)
	switch {
	case bytes.Equal(magic[:], magicV0):
		raw, err := loadV0(br)
		if err != nil {
			return nil, errors.Wrapf(err, "failed reading %s", name)
		}
		return raw, nil
	case bytes.Equal(magic[:], magicV1):
		raw, err := loadV1(br)
		if err != nil {
			return nil, errors.Wrapf(err, "failed reading %s", name)
		}
		return raw, nil
	case bytes.Equal(magic[:], magicV2):
		raw, err := loadV2(br)
		if err != nil {
			return nil, errors.Wrapf(err, "failed reading %s", name)
		}
		return raw, nil
	default:
		return nil, errors.Wrapf(ErrInvalidHeader, "%s: magic %q", name, magic[:])
	}
}

// padIR copies a left/right pair of irSize-length float samples (right may
// be nil for a left-only IR) into a zero-padded HRIRLength buffer.
func padIR(left, right []float32) [HRIRLength][2]float32 {
	var out [HRIRLength][2]float32
	for i, v := range left {
		out[i][0] = v
	}
	for i, v := range right {
		out[i][1] = v
	}
	return out
}
