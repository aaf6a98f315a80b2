// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package k197

import (
	"io"

	"golang.org/x/xerrors"
)

const (
	frMarker = 0xa5 // frame marker in captured bus streams
)

// Readout reads raw display frames from a captured bus stream.
// Each frame on the wire is a marker byte, a length byte and the
// frame payload; resynchronizing a corrupted stream is the caller's
// concern, Readout only reports the error.
type Readout struct {
	r io.Reader

	buf []byte
	err error
}

// NewReadout creates a readout that reads frames from r.
func NewReadout(r io.Reader) *Readout {
	return &Readout{
		r:   r,
		buf: make([]byte, 8),
	}
}

// Read reads the next frame from the stream into f.
// It returns io.EOF at a clean end of stream.
func (rdo *Readout) Read(f *Frame) error {
	v := rdo.readU8()
	if rdo.err != nil {
		return rdo.err
	}
	if v != frMarker {
		return xerrors.Errorf("k197: invalid frame marker (got=0x%x)", v)
	}

	n := rdo.readU8()
	if rdo.err != nil {
		if xerrors.Is(rdo.err, io.EOF) {
			rdo.err = io.ErrUnexpectedEOF
		}
		return xerrors.Errorf("k197: could not read frame length: %w", rdo.err)
	}
	if int(n) > MaxFrameLen {
		return xerrors.Errorf("k197: invalid frame length (got=%d, max=%d)", n, MaxFrameLen)
	}

	f.Len = int(n)
	rdo.read(f.Data[:n])
	if rdo.err != nil {
		if xerrors.Is(rdo.err, io.EOF) {
			rdo.err = io.ErrUnexpectedEOF
		}
		return xerrors.Errorf("k197: could not read frame payload: %w", rdo.err)
	}

	return nil
}

func (rdo *Readout) read(p []byte) {
	if rdo.err != nil {
		return
	}
	_, rdo.err = io.ReadFull(rdo.r, p)
}

func (rdo *Readout) readU8() uint8 {
	rdo.read(rdo.buf[:1])
	return rdo.buf[0]
}
