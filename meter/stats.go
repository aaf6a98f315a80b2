// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"fmt"

	"github.com/alx2009/K197Display-sub000/k197"
)

// Stats accumulates a rolling average, minimum and maximum over the
// stream of numeric readings. The average is an exponential moving
// average with weight 1/n; min and max are straight comparisons.
//
// Stats shadows the last-seen unit: when the meter switches range
// prefix (say mV to V) the accumulated values are rescaled into the
// new unit instead of being reset, so they stay continuous.
type Stats struct {
	Avg float64
	Min float64
	Max float64

	n      uint8 // EMA divisor
	unit   k197.Unit
	last   float64
	primed bool
}

// NewStats creates a statistics cache with the given EMA divisor.
func NewStats(n uint8) (*Stats, error) {
	var s Stats
	if err := s.SetSampleCount(n); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetSampleCount changes the EMA divisor. The change takes effect on
// subsequent samples only; accumulated values are not recomputed.
func (s *Stats) SetSampleCount(n uint8) error {
	if n == 0 {
		return fmt.Errorf("meter: invalid sample count (got=0, want 1..255)")
	}
	s.n = n
	return nil
}

// SampleCount returns the current EMA divisor.
func (s *Stats) SampleCount() uint8 { return s.n }

// Unit returns the unit the accumulated values are expressed in.
func (s *Stats) Unit() k197.Unit { return s.unit }

// Update feeds one reading. Non-numeric readings are ignored. A unit
// or prefix change first rescales the accumulated values into the new
// unit, then the sample is folded in.
func (s *Stats) Update(r k197.Reading, u k197.Unit) {
	if !r.Numeric {
		return
	}
	v := r.Value
	s.last = v

	if !s.primed {
		s.primed = true
		s.unit = u
		s.Avg = v
		s.Min = v
		s.Max = v
		return
	}

	if u != s.unit {
		s.Rescale(k197.Pow10(s.unit.Exp - u.Exp))
		s.unit = u
	}

	s.Avg += (v - s.Avg) / float64(s.n)
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
}

// Reset restarts the accumulation from the most recent numeric value,
// or from zero when none has been seen yet.
func (s *Stats) Reset() {
	s.Avg = s.last
	s.Min = s.last
	s.Max = s.last
}

// Rescale multiplies the accumulated values by factor, converting them
// between unit prefixes.
func (s *Stats) Rescale(factor float64) {
	s.Avg *= factor
	s.Min *= factor
	s.Max *= factor
	s.last *= factor
}
