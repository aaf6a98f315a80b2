// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tap

import (
	"fmt"

	"github.com/go-daq/smbus"

	"github.com/alx2009/K197Display-sub000/k197"
)

// Register layout of the bus-tap bridge. The bridge latches one
// display refresh cycle at a time: a sequence counter that increments
// on every latched frame, the populated byte count, and the frame
// bytes.
const (
	regSeq  = 0x00
	regLen  = 0x01
	regData = 0x10
)

// I2C reads latched frames from the bus-tap bridge over SMBus.
type I2C struct {
	conn *smbus.Conn
	addr uint8
	seq  uint8
}

// NewI2C opens the bus-tap bridge at addr on the given I2C bus.
func NewI2C(bus int, addr uint8) (*I2C, error) {
	conn, err := smbus.Open(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("tap: could not open i2c bus %d: %w", bus, err)
	}
	return &I2C{conn: conn, addr: addr}, nil
}

// Frame copies the latest latched frame into p. The sequence counter
// is read before and after the payload: a mismatch means the bridge
// latched a new frame mid-read, so the read restarts. Frame blocks,
// polling the counter, until a frame newer than the previous call's
// has been latched.
func (src *I2C) Frame(p []byte) (int, error) {
retry:
	for {
		seq, err := src.conn.ReadReg(src.addr, regSeq)
		if err != nil {
			return 0, fmt.Errorf("tap: could not read sequence counter: %w", err)
		}
		if seq == src.seq {
			continue
		}

		n, err := src.conn.ReadReg(src.addr, regLen)
		if err != nil {
			return 0, fmt.Errorf("tap: could not read frame length: %w", err)
		}
		if int(n) > k197.MaxFrameLen {
			return 0, fmt.Errorf("tap: invalid frame length (got=%d, max=%d)", n, k197.MaxFrameLen)
		}
		if len(p) < int(n) {
			return 0, fmt.Errorf("tap: frame buffer too small (got=%d, want=%d)", len(p), n)
		}

		for i := 0; i < int(n); i++ {
			v, err := src.conn.ReadReg(src.addr, regData+uint8(i))
			if err != nil {
				return 0, fmt.Errorf("tap: could not read frame byte %d: %w", i, err)
			}
			p[i] = v
		}

		chk, err := src.conn.ReadReg(src.addr, regSeq)
		if err != nil {
			return 0, fmt.Errorf("tap: could not re-read sequence counter: %w", err)
		}
		if chk != seq {
			// frame changed under us.
			continue retry
		}

		src.seq = seq
		return int(n), nil
	}
}

// Close closes the I2C connection.
func (src *I2C) Close() error {
	return src.conn.Close()
}

var (
	_ Source = (*I2C)(nil)
)
