// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tap

import (
	"fmt"
	"io"
	"os"

	"github.com/alx2009/K197Display-sub000/k197"
)

// File replays raw frames from a capture file.
type File struct {
	f   *os.File
	rdo *k197.Readout
}

// NewFile opens a capture file for replay.
func NewFile(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("tap: could not open capture file %q: %w", name, err)
	}
	return &File{
		f:   f,
		rdo: k197.NewReadout(f),
	}, nil
}

// NewFileFrom replays frames from an already open capture stream.
func NewFileFrom(r io.Reader) *File {
	return &File{rdo: k197.NewReadout(r)}
}

// Frame copies the next captured frame into p.
func (src *File) Frame(p []byte) (int, error) {
	var f k197.Frame
	err := src.rdo.Read(&f)
	if err != nil {
		return 0, err
	}
	if len(p) < f.Len {
		return 0, fmt.Errorf("tap: frame buffer too small (got=%d, want=%d)", len(p), f.Len)
	}
	copy(p, f.Bytes())
	return f.Len, nil
}

// Close closes the capture file.
func (src *File) Close() error {
	if src.f == nil {
		return nil
	}
	return src.f.Close()
}

var (
	_ Source = (*File)(nil)
)
