/*
NAME
  errors.go

DESCRIPTION
  errors.go declares the sentinel errors surfaced by the loader, cache
  and enumerator, following the error kinds of the error handling design.

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

import "github.com/pkg/errors"

// Sentinel errors returned by the loader stages. Callers should use
// errors.Is to test for these; loaders wrap them with file and field
// context using errors.Wrapf.
var (
	// ErrShortRead is returned when a stream ends before its eight-byte
	// magic has been read. A short read inside a format body surfaces as
	// a wrapped io.ErrUnexpectedEOF instead.
	ErrShortRead = errors.New("hrtf: short read")

	// ErrInvalidHeader is returned when the eight-byte magic does not
	// match any known MinPHR version.
	ErrInvalidHeader = errors.New("hrtf: invalid header")

	// ErrBounds is returned when a parsed field violates one of the
	// structural bounds in §3 (IR size, field/elevation/azimuth counts,
	// field distance).
	ErrBounds = errors.New("hrtf: bounds violation")

	// ErrMonotonic is returned when an elevation offset table or field
	// distance sequence is not strictly increasing.
	ErrMonotonic = errors.New("hrtf: monotonicity violation")

	// ErrResourceMissing is returned when a synthetic "!<id>_<name>"
	// filename names an embedded resource that the resource provider
	// does not have.
	ErrResourceMissing = errors.New("hrtf: embedded resource missing")

	// ErrDefaultHrtfMissing is logged as a warning, not returned, when a
	// configured default-hrtf name is absent from the enumeration; it is
	// exported so tests can assert on it.
	ErrDefaultHrtfMissing = errors.New("hrtf: default-hrtf not found")
)
