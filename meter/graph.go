// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"fmt"

	"github.com/alx2009/K197Display-sub000/k197"
)

// GraphCap is the fixed capacity of the graph history, one slot per
// horizontal pixel of the panel's graph area.
const GraphCap = 180

// Graph is a fixed-capacity ring of scalar samples with a decimation
// stage in front: with samplesToSkip=N only every (N+1)th incoming
// sample is stored. Logical index 0 is the oldest stored sample,
// Len()-1 the newest.
type Graph struct {
	data [GraphCap]float64
	wr   int // slot of the most recent sample
	n    int // stored samples, 0..GraphCap

	skip    int // samples dropped between two stored ones
	skipCnt int
	auto    bool

	diag k197.DiagSink
}

// NewGraph creates an empty graph reporting compactions to sink.
// A nil sink discards reports.
func NewGraph(sink k197.DiagSink) *Graph {
	if sink == nil {
		sink = k197.NopSink{}
	}
	g := &Graph{diag: sink}
	g.Reset()
	return g
}

// Len returns the number of stored samples.
func (g *Graph) Len() int { return g.n }

// Full reports whether the ring is saturated; renderers use this to
// switch from grow to scroll semantics.
func (g *Graph) Full() bool { return g.n == GraphCap }

// Decimation returns the current samples-to-skip factor.
func (g *Graph) Decimation() int { return g.skip }

// AutoDecimate reports whether lossy compaction on saturation is
// enabled.
func (g *Graph) AutoDecimate() bool { return g.auto }

// At returns the sample at logical index i, 0 being the oldest.
// It panics when i is out of range.
func (g *Graph) At(i int) float64 {
	if i < 0 || i >= g.n {
		panic(fmt.Errorf("meter: graph index %d out of range (len=%d)", i, g.n))
	}
	return g.data[(i+g.wr+1)%g.n]
}

// Push feeds one sample through the decimation stage.
func (g *Graph) Push(x float64) {
	if g.skipCnt > 0 {
		g.skipCnt--
		return
	}
	g.skipCnt = g.skip

	if g.auto && g.n == GraphCap {
		g.compact()
	}

	g.wr = (g.wr + 1) % GraphCap
	g.data[g.wr] = x
	if g.n < GraphCap {
		g.n++
	}
}

// compact halves the stored history by dropping every other sample,
// keeping the newest, and doubles the effective decimation so the
// visible time span keeps growing at the slower rate.
func (g *Graph) compact() {
	var (
		kept [GraphCap]float64
		n    = (g.n + 1) / 2
	)
	for i := 0; i < n; i++ {
		kept[i] = g.At(g.n - 1 - 2*(n-1-i))
	}
	copy(g.data[:n], kept[:n])
	g.wr = n - 1
	g.n = n

	g.skip = 2*g.skip + 1
	g.skipCnt = g.skip
	g.diag.Report(k197.DiagEvent{Kind: k197.DiagCompaction, Arg: g.skip})
}

// Rescale multiplies every stored sample by factor, converting the
// history between unit prefixes.
func (g *Graph) Rescale(factor float64) {
	for i := 0; i < g.n; i++ {
		j := (i + g.wr + 1) % g.n
		g.data[j] *= factor
	}
}

// SetDecimation changes the samples-to-skip factor; 0 stores every
// sample. The skip counter restarts so the next sample is stored.
func (g *Graph) SetDecimation(skip int) error {
	if skip < 0 {
		return fmt.Errorf("meter: invalid decimation factor (got=%d)", skip)
	}
	g.skip = skip
	g.skipCnt = 0
	return nil
}

// SetAutoDecimate enables or disables lossy compaction on saturation.
// When disabled, a saturated ring silently overwrites its oldest
// sample.
func (g *Graph) SetAutoDecimate(on bool) {
	g.auto = on
}

// Reset discards all stored samples. The decimation configuration is
// kept.
func (g *Graph) Reset() {
	g.n = 0
	g.wr = GraphCap - 1
	g.skipCnt = 0
}
