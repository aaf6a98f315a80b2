// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package k197

import (
	"io"

	"golang.org/x/xerrors"
)

// Encoder writes raw display frames to a capture stream, in the format
// Readout reads back.
type Encoder struct {
	w io.Writer

	buf []byte
	err error
}

// NewEncoder creates an encoder writing frames to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:   w,
		buf: make([]byte, 2+MaxFrameLen),
	}
}

// Encode writes one frame to the stream.
func (enc *Encoder) Encode(f Frame) error {
	if enc.err != nil {
		return enc.err
	}
	if f.Len < 0 || f.Len > MaxFrameLen {
		return xerrors.Errorf("k197: invalid frame length (got=%d, max=%d)", f.Len, MaxFrameLen)
	}

	enc.buf[0] = frMarker
	enc.buf[1] = uint8(f.Len)
	copy(enc.buf[2:], f.Data[:f.Len])
	_, enc.err = enc.w.Write(enc.buf[:2+f.Len])
	if enc.err != nil {
		return xerrors.Errorf("k197: could not write frame: %w", enc.err)
	}
	return nil
}

// Pack builds the raw frame displaying msg with the given annunciators.
// msg holds a sign slot followed by up to NumDigits glyphs; a '.' binds
// to the glyph it precedes, matching the controller's convention of
// flagging the digit the point is displayed in front of. Pack is the
// test- and replay-side inverse of Decoder.Decode.
func Pack(msg string, ann Annunciators) (Frame, error) {
	var (
		f   Frame
		pos = 1
		dot = false
	)
	f.Len = FrameLen
	f.Data[0] = ann.Pre
	f.Data[7] = ann.Mid
	f.Data[8] = ann.Post

	for i := 0; i < len(msg); i++ {
		c := msg[i]
		switch {
		case i == 0:
			switch c {
			case '-':
				f.Data[0] |= annMinus
			case ' ', '+':
				// sign slot, no segment byte.
			default:
				return f, xerrors.Errorf("k197: invalid sign character %q", c)
			}
		case c == '.':
			if dot {
				return f, xerrors.Errorf("k197: consecutive decimal points in %q", msg)
			}
			dot = true
		default:
			if pos > NumDigits {
				return f, xerrors.Errorf("k197: message %q too long", msg)
			}
			code, ok := segOf(c)
			if !ok {
				return f, xerrors.Errorf("k197: no segment code for %q", c)
			}
			f.Data[pos] = segExpand(code, dot)
			dot = false
			pos++
		}
	}
	if dot {
		return f, xerrors.Errorf("k197: trailing decimal point in %q", msg)
	}

	return f, nil
}
