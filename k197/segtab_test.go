// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package k197

import (
	"testing"
)

func TestSegRoundTrip(t *testing.T) {
	for _, g := range []byte("0123456789-LCEFrohnuPAdt ") {
		code, ok := segOf(g)
		if !ok {
			t.Fatalf("no segment code for %q", g)
		}
		if got, want := glyphOf(code), g; got != want {
			t.Fatalf("invalid glyph for code 0x%02x: got=%q, want=%q", code, got, want)
		}
	}
}

func TestSegCompressExpand(t *testing.T) {
	for code := 0; code < 128; code++ {
		for _, dp := range []bool{false, true} {
			raw := segExpand(uint8(code), dp)
			if got, want := segCompress(raw), uint8(code); got != want {
				t.Fatalf("compress(expand(0x%02x, %v)): got=0x%02x, want=0x%02x",
					code, dp, got, want,
				)
			}
			if got, want := raw&(1<<2) != 0, dp; got != want {
				t.Fatalf("invalid dp bit for code 0x%02x: got=%v, want=%v", code, got, want)
			}
		}
	}
}

func TestGlyphOfUnknown(t *testing.T) {
	if got, want := glyphOf(0x49), byte('?'); got != want {
		t.Fatalf("invalid glyph for unmapped code: got=%q, want=%q", got, want)
	}
	if got, want := glyphOf(0), byte(' '); got != want {
		t.Fatalf("invalid glyph for blank code: got=%q, want=%q", got, want)
	}
}
