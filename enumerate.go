/*
NAME
  enumerate.go

DESCRIPTION
  enumerate.go implements §4.5's enumeration half: walking the
  configured search paths (plus the built-in defaults, when in force)
  for .mhr files, folding the embedded resource in, de-duplicating
  display names, and rotating a configured default-hrtf to the front.

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
	"fmt"
	"strings"
)

// builtInPath is the default search path consulted when the configured
// path list is empty, or ends without a trailing comma.
const builtInPath = "openal/hrtf"

// builtInResourceName names the embedded resource enumerated as a
// default, at a fixed, reserved index.
const builtInResourceName = "Built-In HRTF"

const builtInResourceID = 0

// Enumerate rebuilds c's entry table from cfg and returns the ordered
// display names, per §4.5. devname is accepted for parity with the
// renderer's device-scoped enumeration call but does not otherwise
// affect the search; it is logged with any failures.
func (c *Cache) Enumerate(devname string, cfg Config) []string {
	c.enumMu.Lock()
	defer c.enumMu.Unlock()

	c.entries = nil
	c.defaultI = -1

	paths, useDefaults := splitSearchPaths(cfg.HRTFPaths)

	for _, path := range paths {
		names, err := c.Locator.Search(".mhr", path)
		if err != nil {
			if c.Log != nil {
				c.Log.Warning("hrtf: search failed", "path", path, "device", devname, "error", err)
			}
			continue
		}
		for _, name := range names {
			c.addFileEntry(name)
		}
	}

	if useDefaults {
		names, err := c.Locator.Search(".mhr", builtInPath)
		if err != nil {
			if c.Log != nil {
				c.Log.Warning("hrtf: default search failed", "path", builtInPath, "device", devname, "error", err)
			}
		} else {
			for _, name := range names {
				c.addFileEntry(name)
			}
		}

		if c.Resource != nil && c.Resource.Get(builtInResourceID) != nil {
			c.addResourceEntry(builtInResourceID, builtInResourceName)
		}
	}

	if cfg.DefaultHRTF != "" {
		c.rotateDefault(cfg.DefaultHRTF)
	}

	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.DispName
	}
	return out
}

// splitSearchPaths splits raw on commas and whitespace, returning the
// non-empty path elements and whether defaults should also be searched.
// Defaults are included when raw yields no paths, or when raw, ignoring
// trailing whitespace, does not end with a comma (a trailing comma forces
// defaults off); see the trailing-comma nuance documented in §4.5.
func splitSearchPaths(raw string) (paths []string, useDefaults bool) {
	trimmed := strings.TrimRight(raw, " \t\r\n")
	endsInSeparator := len(trimmed) > 0 && trimmed[len(trimmed)-1] == ','

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	paths = make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			paths = append(paths, f)
		}
	}

	useDefaults = len(paths) == 0 || !endsInSeparator
	return paths, useDefaults
}

// addFileEntry implements AddFileEntry (§4.5) for a real filesystem path:
// skips filenames already enumerated, derives a basename from the final
// path separator through the final dot, and de-duplicates the display
// name against already-enumerated ones.
func (c *Cache) addFileEntry(filename string) {
	for _, e := range c.entries {
		if e.Filename == filename {
			return
		}
	}
	c.entries = append(c.entries, HrtfEntry{
		DispName: c.dedupDisplayName(basenameOf(filename)),
		Filename: filename,
	})
}

// addResourceEntry implements the embedded-resource half of AddFileEntry:
// the synthetic filename is "!<resIdx>_<dispName>" and the display name
// is deduplicated the same way a real file's is.
func (c *Cache) addResourceEntry(resIdx int, name string) {
	dispName := c.dedupDisplayName(name)
	c.entries = append(c.entries, HrtfEntry{
		DispName: dispName,
		Filename: fmt.Sprintf("!%d_%s", resIdx, dispName),
	})
}

// basenameOf derives a basename from the last path separator through the
// final '.', matching §4.5's rule.
func basenameOf(filename string) string {
	i := strings.LastIndexAny(filename, "/\\")
	base := filename[i+1:]
	if j := strings.LastIndex(base, "."); j >= 0 {
		base = base[:j]
	}
	return base
}

// dedupDisplayName returns name, or "name #N" with N incremented until
// unique among c.entries' display names.
func (c *Cache) dedupDisplayName(name string) string {
	n := 1
	candidate := name
	for {
		unique := true
		for _, e := range c.entries {
			if e.DispName == candidate {
				unique = false
				break
			}
		}
		if unique {
			return candidate
		}
		n++
		candidate = fmt.Sprintf("%s #%d", name, n)
	}
}

// rotateDefault moves the entry whose display name matches name to the
// front of c.entries, warning if none matches.
func (c *Cache) rotateDefault(name string) {
	for i, e := range c.entries {
		if e.DispName == name {
			if i != 0 {
				entry := c.entries[i]
				copy(c.entries[1:i+1], c.entries[:i])
				c.entries[0] = entry
			}
			c.defaultI = 0
			return
		}
	}
	if c.Log != nil {
		c.Log.Warning("hrtf: default-hrtf not found", "name", name, "error", ErrDefaultHrtfMissing)
	}
}
