/*
NAME
  embedded.go

DESCRIPTION
  embedded.go implements hrtf.ResourceProvider over a small set of .mhr
  fixtures baked into the binary with go:embed, the "Built-In HRTF" the
  enumerator lists alongside any search-path files whenever the default
  paths are in force.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package resource provides the embedded-resource collaborator
// (hrtf.ResourceProvider) that serves the built-in HRTF data set the
// enumerator adds when the default paths are in force.
package resource

import (
	"embed"
	"sort"
)

//go:embed data/*.mhr
var data embed.FS

// EmbeddedProvider serves the embedded .mhr fixtures under data/, indexed
// in sorted filename order. With the single builtin.mhr fixture, id 0 is
// the data set the enumerator lists as "Built-In HRTF"; a fixture whose
// name sorts before builtin.mhr would take id 0 instead.
type EmbeddedProvider struct {
	names []string
}

// NewEmbeddedProvider lists the embedded fixtures once and returns a
// ready-to-use provider.
func NewEmbeddedProvider() *EmbeddedProvider {
	entries, err := data.ReadDir("data")
	if err != nil {
		// The embed directive guarantees this directory exists at build
		// time; a failure here means the binary itself is broken.
		panic("hrtf/resource: embedded data directory missing: " + err.Error())
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return &EmbeddedProvider{names: names}
}

// Get returns the bytes of embedded resource id, or nil if id is out of
// range.
func (p *EmbeddedProvider) Get(id int) []byte {
	if id < 0 || id >= len(p.names) {
		return nil
	}
	b, err := data.ReadFile("data/" + p.names[id])
	if err != nil {
		return nil
	}
	return b
}
