/*
NAME
  bread.go

DESCRIPTION
  bread.go provides little-endian primitive readers over a bounded byte
  stream, the building block the MinPHR format loaders use to pull
  fields out of an HRTF file without hand-rolling bounds checks at every
  call site.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bread implements a little-endian byte reader for binary formats
// that must fail cleanly (no partial success) on a short read.
package bread

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Reader wraps an io.Reader with little-endian primitive reads. Any short
// read is surfaced as io.ErrUnexpectedEOF and the Reader should be
// discarded; it does not attempt to resynchronise.
type Reader struct {
	r   *bufio.Reader
	buf [4]byte
}

// New returns a Reader sourcing from r.
func New(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// fill reads exactly n bytes into the Reader's scratch buffer.
func (b *Reader) fill(n int) error {
	_, err := io.ReadFull(b.r, b.buf[:n])
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// U8 reads an unsigned 8-bit integer.
func (b *Reader) U8() (uint8, error) {
	if err := b.fill(1); err != nil {
		return 0, err
	}
	return b.buf[0], nil
}

// U16 reads an unsigned little-endian 16-bit integer.
func (b *Reader) U16() (uint16, error) {
	if err := b.fill(2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b.buf[:2]), nil
}

// I16 reads a signed little-endian 16-bit integer via an unsigned read
// followed by sign extension.
func (b *Reader) I16() (int16, error) {
	u, err := b.U16()
	if err != nil {
		return 0, err
	}
	return signExtend16(u), nil
}

// U24 reads an unsigned little-endian 24-bit integer into a uint32.
func (b *Reader) U24() (uint32, error) {
	if err := b.fill(3); err != nil {
		return 0, err
	}
	return uint32(b.buf[0]) | uint32(b.buf[1])<<8 | uint32(b.buf[2])<<16, nil
}

// I24 reads a signed little-endian 24-bit integer via an unsigned read
// followed by sign extension.
func (b *Reader) I24() (int32, error) {
	u, err := b.U24()
	if err != nil {
		return 0, err
	}
	return signExtend24(u), nil
}

// U32 reads an unsigned little-endian 32-bit integer.
func (b *Reader) U32() (uint32, error) {
	if err := b.fill(4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b.buf[:4]), nil
}

// Bytes reads n raw bytes.
func (b *Reader) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(b.r, buf)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf, nil
}

// signExtend16 sign-extends a two's-complement 16-bit value held in the low
// bits of u by XORing with the sign bit and subtracting it back out.
func signExtend16(u uint16) int16 {
	const sign = uint16(1) << 15
	return int16((u ^ sign) - sign)
}

// signExtend24 sign-extends a two's-complement 24-bit value held in the low
// 24 bits of u.
func signExtend24(u uint32) int32 {
	const sign = uint32(1) << 23
	return int32(u^sign) - int32(sign)
}
