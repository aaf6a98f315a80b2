// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package k197

import (
	"strconv"
	"strings"
)

// Decoder turns raw display frames into Readings.
//
// Decode never fails: malformed input degrades to a documented default
// (blank message, zero value, cleared annunciators) and anomalies go to
// the diagnostic sink, so the pipeline keeps producing a renderable
// state every cycle.
type Decoder struct {
	diag DiagSink
}

// NewDecoder creates a decoder reporting anomalies to sink.
// A nil sink discards reports.
func NewDecoder(sink DiagSink) *Decoder {
	if sink == nil {
		sink = NopSink{}
	}
	return &Decoder{diag: sink}
}

// Decode decodes one raw frame. Frames shorter than FrameLen are valid:
// missing annunciator bytes read as all-flags-clear and fewer segment
// bytes yield fewer digits; extra bytes beyond FrameLen are ignored.
func (dec *Decoder) Decode(raw []byte) Reading {
	var (
		r   Reading
		txt [2 + NumDigits]byte // sign + digits + at most one '.'
		n   int
	)

	if len(raw) != FrameLen {
		dec.diag.Report(DiagEvent{Kind: DiagByteCount, Arg: len(raw)})
	}

	switch {
	case len(raw) > 0 && raw[0]&annMinus != 0:
		txt[n] = '-'
	default:
		txt[n] = ' '
	}
	n++

	r.Numeric = true
	for i := 0; i < NumDigits; i++ {
		pos := i + 1 // character position; 0 is the sign slot
		if pos >= len(raw) {
			txt[n] = ' '
			n++
			continue
		}
		b := raw[pos]
		if b&(1<<2) != 0 {
			switch r.Dots {
			case 0:
				r.Dots = 1 << uint(pos)
				txt[n] = '.'
				n++
			default:
				// first decimal point wins; keep the glyph.
				dec.diag.Report(DiagEvent{Kind: DiagDupDecimal, Arg: pos})
			}
		}
		g := glyphOf(segCompress(b))
		if r.Numeric && !(g == ' ' || ('0' <= g && g <= '9')) {
			r.Numeric = false
		}
		txt[n] = g
		n++
	}

	r.Text = string(txt[:n])

	if len(raw) > 0 {
		r.Ann.Pre = raw[0]
	}
	if len(raw) > 7 {
		r.Ann.Mid = raw[7]
	}
	if len(raw) > 8 {
		r.Ann.Post = raw[8]
	}

	switch {
	case r.Numeric:
		r.Value = parseValue(r.Text)
	default:
		r.Overrange = strings.Contains(r.Text, "0L")
	}

	return r
}

// parseValue converts a pre-validated digit/space message to its float
// value. An all-space message reads as 0 (documented policy, keeping
// the representation free of a not-a-number state).
func parseValue(text string) float64 {
	neg := len(text) > 0 && text[0] == '-'
	if neg {
		text = text[1:]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// embedded blanks between digits; blank display policy applies.
		return 0
	}
	if neg {
		v = -v
	}
	return v
}
