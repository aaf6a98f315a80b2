// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tap

import (
	"fmt"

	"github.com/alx2009/K197Display-sub000/internal/busmap"
	"github.com/alx2009/K197Display-sub000/k197"
)

// Capture window layout: the tap driver writes a sequence counter,
// the populated byte count and the frame bytes, bumping the counter
// after every latched frame.
const (
	memSeq  = 0
	memLen  = 1
	memData = 2

	// MemWinSize is the size of the capture window to map.
	MemWinSize = memData + k197.MaxFrameLen
)

// Mem reads latched frames from a memory-mapped capture window.
type Mem struct {
	win *busmap.Handle
	seq uint8
}

// NewMem maps the capture window of the tap driver at fname.
func NewMem(fname string, off int64) (*Mem, error) {
	win, err := busmap.Open(fname, off, MemWinSize)
	if err != nil {
		return nil, fmt.Errorf("tap: could not map capture window: %w", err)
	}
	return &Mem{win: win}, nil
}

// NewMemFrom reads frames from an already mapped capture window.
func NewMemFrom(win *busmap.Handle) *Mem {
	return &Mem{win: win}
}

// Frame copies the latest latched frame into p, with the same
// double-read sequence protocol as the I2C source.
func (src *Mem) Frame(p []byte) (int, error) {
	for {
		seq := src.win.At(memSeq)
		if seq == src.seq {
			continue
		}

		n := int(src.win.At(memLen))
		if n > k197.MaxFrameLen {
			return 0, fmt.Errorf("tap: invalid frame length (got=%d, max=%d)", n, k197.MaxFrameLen)
		}
		if len(p) < n {
			return 0, fmt.Errorf("tap: frame buffer too small (got=%d, want=%d)", len(p), n)
		}

		for i := 0; i < n; i++ {
			p[i] = src.win.At(memData + i)
		}

		if src.win.At(memSeq) != seq {
			continue
		}

		src.seq = seq
		return n, nil
	}
}

// Close unmaps the capture window.
func (src *Mem) Close() error {
	return src.win.Close()
}

var (
	_ Source = (*Mem)(nil)
)
