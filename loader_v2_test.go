/*
NAME
  loader_v2_test.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package hrtf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ausocean/hrtf/internal/bread"
)

func writeV2Field(buf *bytes.Buffer, distanceMM uint16, evCount, azCount uint8) int {
	binary.Write(buf, binary.LittleEndian, distanceMM)
	buf.WriteByte(evCount)
	irCount := 0
	for i := uint8(0); i < evCount; i++ {
		buf.WriteByte(azCount)
		irCount += int(azCount)
	}
	return irCount
}

// twoFieldV2Body builds a two-field MinPHR02 body, with the fields written
// out of distance order so sortFieldsByDistance has something to do:
// left-right stereo, 16-bit samples.
func twoFieldV2Body(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(44100))
	buf.WriteByte(sampleS16)
	buf.WriteByte(channelLeftRight)
	buf.WriteByte(8) // irSize
	buf.WriteByte(2) // fdCount

	n1 := writeV2Field(&buf, 2000, 5, 1) // far field, written first
	n2 := writeV2Field(&buf, 500, 5, 1)  // near field, written second

	total := n1 + n2
	for i := 0; i < total; i++ {
		for j := 0; j < 8; j++ {
			binary.Write(&buf, binary.LittleEndian, int16(i+1)) // left
			binary.Write(&buf, binary.LittleEndian, int16(-(i + 1))) // right
		}
	}
	for i := 0; i < total; i++ {
		buf.WriteByte(4) // left delay
		buf.WriteByte(2) // right delay
	}
	return buf.Bytes()
}

func TestLoadV2SortsFieldsByAscendingDistance(t *testing.T) {
	raw, err := loadV2(bread.New(bytes.NewReader(twoFieldV2Body(t))))
	if err != nil {
		t.Fatalf("loadV2() error = %v", err)
	}
	if len(raw.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(raw.Fields))
	}
	if raw.Fields[0].DistanceMM != 500 || raw.Fields[1].DistanceMM != 2000 {
		t.Errorf("Fields distances = [%d, %d], want [500, 2000] (ascending)", raw.Fields[0].DistanceMM, raw.Fields[1].DistanceMM)
	}
	// The near field (second in the file, first after sort) starts at IR 0;
	// its first sample should be the first IR written for that group.
	if raw.Coeffs[0][0][0] <= 0 {
		t.Errorf("Coeffs[0][0][0] = %v, want a positive left sample from the reordered near field", raw.Coeffs[0][0][0])
	}
}

func TestLoadV2LeftRightChannelsAreNotMirrored(t *testing.T) {
	raw, err := loadV2(bread.New(bytes.NewReader(twoFieldV2Body(t))))
	if err != nil {
		t.Fatalf("loadV2() error = %v", err)
	}
	// A true stereo file carries independent left/right delays and
	// samples; mirroring (which would overwrite the right channel from
	// the left) must not have run.
	if raw.Delays[0][0] == raw.Delays[0][1] {
		t.Errorf("Delays[0] = %v, want distinct left/right delays for a stereo file", raw.Delays[0])
	}
}

func TestLoadV2RejectsUnknownSampleType(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(44100))
	buf.WriteByte(99) // invalid sampleType
	buf.WriteByte(channelLeftOnly)
	buf.WriteByte(8)
	buf.WriteByte(1)

	_, err := loadV2(bread.New(bytes.NewReader(buf.Bytes())))
	if err == nil {
		t.Fatal("expected an error for an unknown sample type, got nil")
	}
}

func TestLoadV2RejectsDistanceOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(44100))
	buf.WriteByte(sampleS16)
	buf.WriteByte(channelLeftOnly)
	buf.WriteByte(8)
	buf.WriteByte(1)
	binary.Write(&buf, binary.LittleEndian, uint16(10)) // below MinFDDistance

	_, err := loadV2(bread.New(bytes.NewReader(buf.Bytes())))
	if err == nil {
		t.Fatal("expected an error for an out-of-range field distance, got nil")
	}
}
