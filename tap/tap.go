// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tap provides sources of raw display frames: the live bus
// tap (over I2C or a memory-mapped capture window) and capture-file
// replay.
//
// A source hands over complete, stable frames only: a frame is copied
// out of whatever staging buffer the tap hardware fills before it is
// returned, so the decoder never observes a frame mid-update.
package tap // import "github.com/alx2009/K197Display-sub000/tap"

// Source delivers raw display frames. Frame copies the next complete
// frame into p and returns the number of populated bytes; p must hold
// at least k197.MaxFrameLen bytes. A replay source returns io.EOF at
// end of capture.
type Source interface {
	Frame(p []byte) (int, error)
	Close() error
}
