/*
NAME
  entry.go

DESCRIPTION
  entry.go declares the enumeration and cache record types, and the
  Cache that owns the two process-wide tables the enumerator and
  loader share: the list of discovered HRTF entries, and the sorted,
  reference-counted list of loaded stores.

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
	"sort"
	"sync"

	"github.com/ausocean/utils/logging"
)

// HrtfEntry is one enumerated, selectable HRTF data set.
type HrtfEntry struct {
	// DispName is the human-readable, de-duplicated display name.
	DispName string

	// Filename is either a real filesystem path, or the synthetic form
	// "!<resIdx>_<dispName>" naming an embedded resource.
	Filename string
}

// LoadedHrtf is one cache slot: a filename paired with the store loaded
// for it at a particular device sample rate. Multiple slots may share a
// filename, one per sample rate a renderer has requested.
type LoadedHrtf struct {
	Filename string
	Store    *HrtfStore
}

// Cache owns the enumerated-entries table and the loaded-stores table,
// and enforces the locking discipline of §5: enumMu is always acquired
// before loadedMu, never the reverse.
//
// A single Cache is normally shared by a whole process (the renderer
// holds one), but nothing here prevents constructing more than one for
// isolated tests.
type Cache struct {
	Log      logging.Logger
	Locator  FileLocator
	Resource ResourceProvider

	enumMu   sync.Mutex
	entries  []HrtfEntry // insertion order, with rotateDefault free to rotate one entry to the front
	defaultI int         // index last rotated to front by rotateDefault, -1 if none

	loadedMu sync.Mutex
	loaded   []LoadedHrtf // sorted by Filename, then by SampleRate

	// firstLoad records which filename+rate pairs have already gone
	// through the conditioner once. It is written on insert and not
	// read: a cache hit returns the cached store without conditioning it
	// again, so the hrtf-size clamp is never re-applied to a store other
	// renderers may already reference (§5, "Open concurrency subtlety").
	firstLoad map[string]bool
}

// NewCache returns a Cache ready for enumeration and loading. locator and
// resource are the external data-file locator and embedded-resource
// collaborators (§6); log receives TRACE/WARN/ERR messages.
func NewCache(locator FileLocator, resource ResourceProvider, log logging.Logger) *Cache {
	return &Cache{
		Log:       log,
		Locator:   locator,
		Resource:  resource,
		firstLoad: make(map[string]bool),
	}
}

// sortLoaded keeps c.loaded ordered by filename, then by sample rate,
// matching the "ordered vector" of §3.
func (c *Cache) sortLoaded() {
	sort.Slice(c.loaded, func(i, j int) bool {
		if c.loaded[i].Filename != c.loaded[j].Filename {
			return c.loaded[i].Filename < c.loaded[j].Filename
		}
		return c.loaded[i].Store.SampleRate < c.loaded[j].Store.SampleRate
	})
}
