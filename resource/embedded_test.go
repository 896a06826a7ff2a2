/*
NAME
  embedded_test.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package resource

import "testing"

func TestEmbeddedProviderServesBuiltinAtIndexZero(t *testing.T) {
	p := NewEmbeddedProvider()
	b := p.Get(0)
	if len(b) == 0 {
		t.Fatal("Get(0) returned no data, want the built-in fixture")
	}
	if string(b[:8]) != "MinPHR02" {
		t.Errorf("Get(0) magic = %q, want MinPHR02", b[:8])
	}
}

func TestEmbeddedProviderOutOfRangeReturnsNil(t *testing.T) {
	p := NewEmbeddedProvider()
	if b := p.Get(999); b != nil {
		t.Errorf("Get(999) = %v, want nil", b)
	}
}
