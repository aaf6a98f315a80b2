// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"github.com/alx2009/K197Display-sub000/k197"
)

// Snapshot is a frozen copy of the render-facing state, taken when
// hold mode is entered. It receives no further samples; live sampling
// continues behind it.
type Snapshot struct {
	Reading k197.Reading
	Unit    k197.Unit
	Stats   Stats
	Graph   Graph
}

// Capture deep-copies the current state into a snapshot.
func Capture(r k197.Reading, u k197.Unit, stats *Stats, graph *Graph) *Snapshot {
	return &Snapshot{
		Reading: r,
		Unit:    u,
		Stats:   *stats,
		Graph:   *graph,
	}
}
