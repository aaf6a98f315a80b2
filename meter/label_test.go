// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"testing"
)

func TestLabelValue(t *testing.T) {
	for _, tc := range []struct {
		lbl  Label
		want float64
	}{
		{Label{}, 0},
		{Label{Man: 5, Exp: 0}, 5},
		{Label{Man: 5, Exp: 2}, 500},
		{Label{Man: -5, Exp: -1}, -0.5},
		{Label{Man: 120, Exp: -1}, 12},
	} {
		if got := tc.lbl.Value(); got != tc.want {
			t.Fatalf("invalid value of %v: got=%v, want=%v", tc.lbl, got, tc.want)
		}
	}
}

func TestLabelNorm(t *testing.T) {
	for _, tc := range []struct {
		lbl  Label
		want Label
	}{
		{Label{Man: 5, Exp: 0}, Label{Man: 5, Exp: 0}},
		{Label{Man: 120, Exp: 0}, Label{Man: 1, Exp: 2}},
		{Label{Man: -120, Exp: -1}, Label{Man: -1, Exp: 1}},
		{Label{Man: 10, Exp: 3}, Label{Man: 1, Exp: 4}},
	} {
		got := tc.lbl.Norm()
		if got != tc.want {
			t.Fatalf("invalid norm of %v: got=%v, want=%v", tc.lbl, got, tc.want)
		}
		if !got.Normalized() {
			t.Fatalf("norm of %v not normalized: %v", tc.lbl, got)
		}
	}
}

func TestLabelEq(t *testing.T) {
	for _, tc := range []struct {
		a, b Label
		want bool
	}{
		// both normalized, field compare.
		{Label{Man: 5, Exp: 1}, Label{Man: 5, Exp: 1}, true},
		{Label{Man: 5, Exp: 1}, Label{Man: 5, Exp: 2}, false},
		// value fallback when either is not normalized.
		{Label{Man: 10, Exp: 0}, Label{Man: 1, Exp: 1}, true},
		{Label{Man: 100, Exp: -1}, Label{Man: 1, Exp: 1}, true},
		{Label{Man: 100, Exp: -1}, Label{Man: 2, Exp: 1}, false},
	} {
		if got := tc.a.Eq(tc.b); got != tc.want {
			t.Fatalf("invalid %v == %v: got=%v, want=%v", tc.a, tc.b, got, tc.want)
		}
	}
}

// Equality through the value fallback must agree with comparing the
// expanded values for any non-normalized operand.
func TestLabelEqFallbackProperty(t *testing.T) {
	labels := []Label{
		{Man: 10, Exp: 0},
		{Man: 20, Exp: -1},
		{Man: 100, Exp: -2},
		{Man: 1, Exp: 1},
		{Man: -10, Exp: 0},
		{Man: -1, Exp: 1},
		{Man: 50, Exp: 0},
	}
	for _, a := range labels {
		for _, b := range labels {
			if a.Normalized() && b.Normalized() {
				continue
			}
			if got, want := a.Eq(b), a.Value() == b.Value(); got != want {
				t.Fatalf("invalid %v == %v: got=%v, want=%v", a, b, got, want)
			}
		}
	}
}

func TestLabelOps(t *testing.T) {
	lbl := Label{Man: -5, Exp: 2}
	if got, want := lbl.Neg(), (Label{Man: 5, Exp: 2}); got != want {
		t.Fatalf("invalid neg: got=%v, want=%v", got, want)
	}
	if got, want := lbl.Abs(), (Label{Man: 5, Exp: 2}); got != want {
		t.Fatalf("invalid abs: got=%v, want=%v", got, want)
	}
	if got, want := lbl.IncExp(), (Label{Man: -5, Exp: 3}); got != want {
		t.Fatalf("invalid inc-exp: got=%v, want=%v", got, want)
	}
	if got, want := lbl.DecExp(), (Label{Man: -5, Exp: 1}); got != want {
		t.Fatalf("invalid dec-exp: got=%v, want=%v", got, want)
	}
	if !lbl.Less(Label{Man: 1, Exp: 0}) {
		t.Fatalf("expected %v < 1", lbl)
	}
}
