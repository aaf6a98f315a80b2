// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"reflect"
	"testing"

	"github.com/alx2009/K197Display-sub000/k197"
)

type recSink struct {
	evts []k197.DiagEvent
}

func (s *recSink) Report(e k197.DiagEvent) { s.evts = append(s.evts, e) }

func TestGraphGrow(t *testing.T) {
	g := NewGraph(nil)
	for i := 0; i < 10; i++ {
		g.Push(float64(i))
	}

	if got, want := g.Len(), 10; got != want {
		t.Fatalf("invalid length: got=%d, want=%d", got, want)
	}
	if g.Full() {
		t.Fatalf("graph reported full")
	}
	for i := 0; i < 10; i++ {
		if got, want := g.At(i), float64(i); got != want {
			t.Fatalf("invalid sample %d: got=%v, want=%v", i, got, want)
		}
	}
}

func TestGraphEviction(t *testing.T) {
	g := NewGraph(nil)
	for i := 0; i < GraphCap+1; i++ {
		g.Push(float64(i))
	}

	if got, want := g.Len(), GraphCap; got != want {
		t.Fatalf("invalid length: got=%d, want=%d", got, want)
	}
	if !g.Full() {
		t.Fatalf("graph not reported full")
	}
	// the first pushed sample was evicted.
	if got, want := g.At(0), 1.0; got != want {
		t.Fatalf("invalid oldest sample: got=%v, want=%v", got, want)
	}
	if got, want := g.At(GraphCap-1), float64(GraphCap); got != want {
		t.Fatalf("invalid newest sample: got=%v, want=%v", got, want)
	}
}

// The array-index conversion must invert the logical-index conversion
// for every (count, writeIndex, logical) triple.
func TestGraphIndexConversion(t *testing.T) {
	for count := 1; count <= GraphCap; count += 59 {
		for wr := 0; wr < count; wr++ {
			for logical := 0; logical < count; logical++ {
				arr := (logical + wr + 1) % count
				inv := (count + arr - wr - 1) % count
				if inv != logical {
					t.Fatalf("count=%d wr=%d: logical %d -> array %d -> logical %d",
						count, wr, logical, arr, inv,
					)
				}
			}
		}
	}
}

func TestGraphDecimation(t *testing.T) {
	g := NewGraph(nil)
	if err := g.SetDecimation(2); err != nil {
		t.Fatalf("could not set decimation: %+v", err)
	}

	for i := 0; i < 9; i++ {
		g.Push(float64(i))
	}

	// every 3rd sample stored, starting with the first.
	want := []float64{0, 3, 6}
	got := make([]float64, g.Len())
	for i := range got {
		got[i] = g.At(i)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid samples: got=%v, want=%v", got, want)
	}

	if err := g.SetDecimation(-1); err == nil {
		t.Fatalf("expected an error for negative decimation")
	}
}

func TestGraphRescale(t *testing.T) {
	g := NewGraph(nil)
	for i := 1; i <= 3; i++ {
		g.Push(float64(i) * 100)
	}
	g.Rescale(0.001)

	want := []float64{0.1, 0.2, 0.3}
	for i, w := range want {
		if got := g.At(i); got != w {
			t.Fatalf("invalid sample %d: got=%v, want=%v", i, got, w)
		}
	}
}

func TestGraphAutoDecimate(t *testing.T) {
	var sink recSink
	g := NewGraph(&sink)
	g.SetAutoDecimate(true)

	for i := 0; i < GraphCap+1; i++ {
		g.Push(float64(i))
	}

	// saturation triggered one compaction: half the history kept,
	// newest sample preserved, skip factor raised.
	if got, want := g.Len(), GraphCap/2+1; got != want {
		t.Fatalf("invalid length: got=%d, want=%d", got, want)
	}
	if got, want := g.At(g.Len()-1), float64(GraphCap); got != want {
		t.Fatalf("invalid newest sample: got=%v, want=%v", got, want)
	}
	if got, want := g.At(g.Len()-2), float64(GraphCap-1); got != want {
		t.Fatalf("invalid kept sample: got=%v, want=%v", got, want)
	}
	if got, want := g.At(g.Len()-3), float64(GraphCap-3); got != want {
		t.Fatalf("invalid kept sample: got=%v, want=%v", got, want)
	}
	if got, want := g.Decimation(), 1; got != want {
		t.Fatalf("invalid decimation factor: got=%d, want=%d", got, want)
	}

	want := []k197.DiagEvent{{Kind: k197.DiagCompaction, Arg: 1}}
	if !reflect.DeepEqual(sink.evts, want) {
		t.Fatalf("invalid diagnostics: got=%v, want=%v", sink.evts, want)
	}

	// ordering stays monotonic after compaction.
	for i := 1; i < g.Len(); i++ {
		if g.At(i-1) >= g.At(i) {
			t.Fatalf("samples not monotonic at %d: %v >= %v", i, g.At(i-1), g.At(i))
		}
	}
}

func TestGraphReset(t *testing.T) {
	g := NewGraph(nil)
	if err := g.SetDecimation(1); err != nil {
		t.Fatalf("could not set decimation: %+v", err)
	}
	for i := 0; i < 10; i++ {
		g.Push(float64(i))
	}
	g.Reset()

	if got, want := g.Len(), 0; got != want {
		t.Fatalf("invalid length after reset: got=%d, want=%d", got, want)
	}
	if got, want := g.Decimation(), 1; got != want {
		t.Fatalf("decimation not kept across reset: got=%d, want=%d", got, want)
	}

	g.Push(42)
	if got, want := g.Len(), 1; got != want {
		t.Fatalf("invalid length: got=%d, want=%d", got, want)
	}
	if got, want := g.At(0), 42.0; got != want {
		t.Fatalf("invalid sample: got=%v, want=%v", got, want)
	}
}
