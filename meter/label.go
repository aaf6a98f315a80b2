// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"fmt"

	"github.com/alx2009/K197Display-sub000/k197"
)

// Label is an axis label value, mantissa times a power of ten.
// The canonical form is normalized: |mantissa| < 10.
type Label struct {
	Man int8
	Exp int8
}

func (l Label) String() string {
	return fmt.Sprintf("%de%d", l.Man, l.Exp)
}

// Value returns the expanded float value of the label.
func (l Label) Value() float64 {
	return float64(l.Man) * k197.Pow10(l.Exp)
}

// Normalized reports whether |mantissa| < 10.
func (l Label) Normalized() bool {
	return l.Man > -10 && l.Man < 10
}

// Norm returns the normalized form of the label.
// Normalization truncates toward zero.
func (l Label) Norm() Label {
	for !l.Normalized() {
		l.Man /= 10
		l.Exp++
	}
	return l
}

// Eq compares two labels, by field when both are normalized and by
// expanded value otherwise.
func (l Label) Eq(o Label) bool {
	if l.Normalized() && o.Normalized() {
		return l.Man == o.Man && l.Exp == o.Exp
	}
	return l.Value() == o.Value()
}

// Less reports whether l orders before o by expanded value.
func (l Label) Less(o Label) bool {
	return l.Value() < o.Value()
}

// Neg returns the label with the mantissa sign flipped.
func (l Label) Neg() Label {
	return Label{Man: -l.Man, Exp: l.Exp}
}

// Abs returns the label with a non-negative mantissa.
func (l Label) Abs() Label {
	if l.Man < 0 {
		return l.Neg()
	}
	return l
}

// IncExp returns the label scaled up by a decade, mantissa unchanged.
func (l Label) IncExp() Label {
	return Label{Man: l.Man, Exp: l.Exp + 1}
}

// DecExp returns the label scaled down by a decade, mantissa unchanged.
func (l Label) DecExp() Label {
	return Label{Man: l.Man, Exp: l.Exp - 1}
}
