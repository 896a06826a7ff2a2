/*
NAME
  enumerate_test.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package hrtf

import (
	"testing"

	"github.com/ausocean/utils/logging"
)

// fakeLocator answers Search with a fixed table keyed by path.
type fakeLocator struct {
	byPath map[string][]string
}

func (f *fakeLocator) Search(ext, path string) ([]string, error) {
	return f.byPath[path], nil
}

// fakeResource answers Get with a fixed table keyed by id.
type fakeResource struct {
	byID map[int][]byte
}

func (f *fakeResource) Get(id int) []byte { return f.byID[id] }

func newTestCache(t *testing.T, locator *fakeLocator, resource *fakeResource) *Cache {
	t.Helper()
	return NewCache(locator, resource, (*logging.TestLogger)(t))
}

func TestEnumerateIncludesDefaultsWhenPathsEmpty(t *testing.T) {
	loc := &fakeLocator{byPath: map[string][]string{
		"openal/hrtf": {"/usr/share/openal/hrtf/default.mhr"},
	}}
	res := &fakeResource{byID: map[int][]byte{0: []byte("fake-mhr-bytes")}}
	c := newTestCache(t, loc, res)

	names := c.Enumerate("dev0", Config{})

	if len(names) != 2 {
		t.Fatalf("got %d names, want 2: %v", len(names), names)
	}
	if names[0] != "default" {
		t.Errorf("names[0] = %q, want %q", names[0], "default")
	}
	if names[1] != builtInResourceName {
		t.Errorf("names[1] = %q, want %q", names[1], builtInResourceName)
	}
}

func TestEnumerateTrailingCommaSuppressesDefaults(t *testing.T) {
	loc := &fakeLocator{byPath: map[string][]string{
		"/custom":     {"/custom/a.mhr"},
		"openal/hrtf": {"/usr/share/openal/hrtf/default.mhr"},
	}}
	res := &fakeResource{byID: map[int][]byte{0: []byte("fake")}}
	c := newTestCache(t, loc, res)

	names := c.Enumerate("dev0", Config{HRTFPaths: "/custom,"})

	if len(names) != 1 || names[0] != "a" {
		t.Fatalf("got %v, want [a] (defaults suppressed by trailing comma)", names)
	}
}

func TestEnumerateBareFinalEntryLeavesDefaultsOn(t *testing.T) {
	loc := &fakeLocator{byPath: map[string][]string{
		"/custom":     {"/custom/a.mhr"},
		"openal/hrtf": {"/usr/share/openal/hrtf/default.mhr"},
	}}
	res := &fakeResource{byID: map[int][]byte{}}
	c := newTestCache(t, loc, res)

	names := c.Enumerate("dev0", Config{HRTFPaths: "/custom"})

	if len(names) != 2 {
		t.Fatalf("got %v, want 2 entries (defaults still on)", names)
	}
}

func TestEnumerateDeduplicatesDisplayNames(t *testing.T) {
	loc := &fakeLocator{byPath: map[string][]string{
		"/a": {"/a/x.mhr"},
		"/b": {"/b/x.mhr"},
	}}
	res := &fakeResource{}
	c := newTestCache(t, loc, res)

	names := c.Enumerate("dev0", Config{HRTFPaths: "/a,/b,"})

	if len(names) != 2 || names[0] != "x" || names[1] != "x #2" {
		t.Fatalf("got %v, want [x x #2]", names)
	}
}

func TestEnumerateSkipsRepeatedFilename(t *testing.T) {
	loc := &fakeLocator{byPath: map[string][]string{
		"/a": {"/a/x.mhr", "/a/x.mhr"},
	}}
	c := newTestCache(t, loc, &fakeResource{})

	names := c.Enumerate("dev0", Config{HRTFPaths: "/a,"})

	if len(names) != 1 {
		t.Fatalf("got %v, want one entry for a repeated filename", names)
	}
}

func TestEnumerateRotatesDefaultToFront(t *testing.T) {
	loc := &fakeLocator{byPath: map[string][]string{
		"/a": {"/a/one.mhr", "/a/two.mhr", "/a/three.mhr"},
	}}
	c := newTestCache(t, loc, &fakeResource{})

	names := c.Enumerate("dev0", Config{HRTFPaths: "/a,", DefaultHRTF: "three"})

	if names[0] != "three" {
		t.Fatalf("got %v, want \"three\" rotated to front", names)
	}
}

func TestEnumerateWarnsOnMissingDefault(t *testing.T) {
	loc := &fakeLocator{byPath: map[string][]string{
		"/a": {"/a/one.mhr"},
	}}
	c := newTestCache(t, loc, &fakeResource{})

	// Should not panic, and should simply leave ordering unrotated.
	names := c.Enumerate("dev0", Config{HRTFPaths: "/a,", DefaultHRTF: "nonexistent"})
	if len(names) != 1 || names[0] != "one" {
		t.Fatalf("got %v, want [one] with no rotation", names)
	}
}

func TestBasenameOfHandlesBothSeparators(t *testing.T) {
	cases := map[string]string{
		"/a/b/c.mhr":    "c",
		`C:\a\b\c.mhr`:  "c",
		"noext":         "noext",
		"a.b/c.d.mhr":   "c.d",
	}
	for in, want := range cases {
		if got := basenameOf(in); got != want {
			t.Errorf("basenameOf(%q) = %q, want %q", in, got, want)
		}
	}
}
