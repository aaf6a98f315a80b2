// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package k197

// The display controller packs seven segment lines and the decimal point
// into one byte per digit: bit 2 is the decimal point, the segment lines
// occupy the remaining bits. Discarding bit 2 and shifting the high five
// bits down by one yields a 7-bit code with the usual a..g assignment
// (a=bit0 .. g=bit6).

const glyphUnknown = '?'

// segtab maps a compressed 7-bit segment code to its display glyph.
// Codes the controller never produces map to glyphUnknown.
var segtab = [128]byte{
	0x3f: '0',
	0x06: '1',
	0x5b: '2',
	0x4f: '3',
	0x66: '4',
	0x6d: '5',
	0x7d: '6',
	0x07: '7',
	0x7f: '8',
	0x6f: '9',

	0x40: '-',
	0x38: 'L',
	0x39: 'C',
	0x79: 'E',
	0x71: 'F',
	0x50: 'r',
	0x5c: 'o',
	0x74: 'h',
	0x54: 'n',
	0x1c: 'u',
	0x73: 'P',
	0x77: 'A',
	0x5e: 'd',
	0x78: 't',
}

// glyphOf returns the glyph for a compressed 7-bit segment code.
func glyphOf(code uint8) byte {
	code &= 0x7f
	if code == 0 {
		return ' '
	}
	g := segtab[code]
	if g == 0 {
		return glyphUnknown
	}
	return g
}

// segOf returns the compressed segment code displaying glyph g.
// The second return value is false when no code renders g.
func segOf(g byte) (uint8, bool) {
	if g == ' ' {
		return 0, true
	}
	for code, glyph := range segtab {
		if glyph == g {
			return uint8(code), true
		}
	}
	return 0, false
}

// segCompress drops the decimal-point bit (bit 2) from a raw digit byte
// and shifts the high five bits down by one position.
func segCompress(b uint8) uint8 {
	return (b & 0x03) | ((b >> 1) & 0x7c)
}

// segExpand is the inverse of segCompress; dp sets the decimal-point bit.
func segExpand(code uint8, dp bool) uint8 {
	b := (code & 0x03) | ((code & 0x7c) << 1)
	if dp {
		b |= 1 << 2
	}
	return b
}
