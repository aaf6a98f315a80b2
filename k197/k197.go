// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package k197 decodes the display-bus protocol of a K197 bench multimeter.
package k197 // import "github.com/alx2009/K197Display-sub000/k197"

const (
	// MaxFrameLen is the largest raw frame the bus tap may hand over.
	MaxFrameLen = 18

	// FrameLen is the number of meaningful byte slots in a frame:
	// one pre-annunciator byte, six segment-encoded digit bytes,
	// one mid- and one post-annunciator byte.
	FrameLen = 9

	// NumDigits is the number of segment-encoded digit positions.
	// Character position 0 is reserved for the sign.
	NumDigits = 6
)

// Frame is one refresh-cycle's worth of raw display-bus bytes,
// copied out of the transport's staging buffer.
type Frame struct {
	Len  int
	Data [MaxFrameLen]byte
}

// Bytes returns the populated byte slots of the frame.
func (f *Frame) Bytes() []byte { return f.Data[:f.Len] }

// Annunciators holds the three fixed-function indicator bytes of a frame.
// Missing bytes (short frame) read as all-flags-clear.
type Annunciators struct {
	Pre  uint8 // byte 0
	Mid  uint8 // byte 7
	Post uint8 // byte 8
}

const (
	annMinus   = 1 << 7 // pre
	annAC      = 1 << 6
	annDC      = 1 << 5
	annAuto    = 1 << 4
	annRel     = 1 << 3
	annDB      = 1 << 2
	annBatt    = 1 << 1
	annRemote  = 1 << 0
	annVolt    = 1 << 0 // mid
	annAmp     = 1 << 1
	annOhm     = 1 << 2
	annHertz   = 1 << 3
	annFarad   = 1 << 4
	annDecibel = 1 << 5
	annMilli   = 1 << 0 // post
	annMicro   = 1 << 1
	annKilo    = 1 << 2
	annMega    = 1 << 3
	annNano    = 1 << 4
)

func (ann Annunciators) Minus() bool      { return ann.Pre&annMinus != 0 }
func (ann Annunciators) AC() bool         { return ann.Pre&annAC != 0 }
func (ann Annunciators) DC() bool         { return ann.Pre&annDC != 0 }
func (ann Annunciators) Auto() bool       { return ann.Pre&annAuto != 0 }
func (ann Annunciators) Rel() bool        { return ann.Pre&annRel != 0 }
func (ann Annunciators) DB() bool         { return ann.Pre&annDB != 0 }
func (ann Annunciators) BatteryLow() bool { return ann.Pre&annBatt != 0 }
func (ann Annunciators) Remote() bool     { return ann.Pre&annRemote != 0 }

func (ann Annunciators) Volt() bool    { return ann.Mid&annVolt != 0 }
func (ann Annunciators) Amp() bool     { return ann.Mid&annAmp != 0 }
func (ann Annunciators) Ohm() bool     { return ann.Mid&annOhm != 0 }
func (ann Annunciators) Hertz() bool   { return ann.Mid&annHertz != 0 }
func (ann Annunciators) Farad() bool   { return ann.Mid&annFarad != 0 }
func (ann Annunciators) Decibel() bool { return ann.Mid&annDecibel != 0 }

func (ann Annunciators) Milli() bool { return ann.Post&annMilli != 0 }
func (ann Annunciators) Micro() bool { return ann.Post&annMicro != 0 }
func (ann Annunciators) Kilo() bool  { return ann.Post&annKilo != 0 }
func (ann Annunciators) Mega() bool  { return ann.Post&annMega != 0 }
func (ann Annunciators) Nano() bool  { return ann.Post&annNano != 0 }

// Reading is the decoded result of one display frame.
//
// Numeric and Overrange are mutually exclusive; Value is meaningful
// only when Numeric is true (an all-blank message reads as 0).
type Reading struct {
	Text      string // sign slot + up to 6 glyphs + at most one '.'
	Dots      uint8  // bit per character position carrying a decimal point
	Numeric   bool   // every glyph is a digit or a space
	Overrange bool   // non-numeric message containing "0L"
	Value     float64
	Ann       Annunciators
}

// Blank reports whether the message is all spaces.
func (r Reading) Blank() bool {
	for i := 0; i < len(r.Text); i++ {
		if r.Text[i] != ' ' {
			return false
		}
	}
	return true
}
