// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"fmt"
	"math"

	"github.com/alx2009/K197Display-sub000/k197"
)

// YScalePolicy selects how the vertical axis bounds relate to the data.
type YScalePolicy int

const (
	// ScaleZoom picks the tightest label bounds around [min, max].
	ScaleZoom YScalePolicy = iota

	// ScaleIncludeZero extends the bounds to cover zero.
	ScaleIncludeZero

	// ScalePreferSymmetric makes the bounds symmetric around zero when
	// the data straddles zero, tightest bounds otherwise.
	ScalePreferSymmetric

	// ScaleZeroSymmetric combines ScaleIncludeZero and
	// ScalePreferSymmetric.
	ScaleZeroSymmetric

	// ScaleForceSymmetric always makes the bounds symmetric around
	// zero, whatever the data sign. With single-signed data the lower
	// (or upper) bound then sits beyond the data on purpose.
	ScaleForceSymmetric
)

func (p YScalePolicy) String() string {
	switch p {
	case ScaleZoom:
		return "zoom"
	case ScaleIncludeZero:
		return "include-zero"
	case ScalePreferSymmetric:
		return "prefer-symmetric"
	case ScaleZeroSymmetric:
		return "zero-symmetric"
	case ScaleForceSymmetric:
		return "force-symmetric"
	}
	return fmt.Sprintf("YScalePolicy(%d)", int(p))
}

// ComputeScale derives normalized axis bounds for data in [min, max]
// under the given policy. Except under ScaleForceSymmetric, the bounds
// cover the data: low.Value() <= min and high.Value() >= max.
func ComputeScale(min, max float64, policy YScalePolicy) (low, high Label, includesZero bool) {
	low = floorLabel(min)
	high = ceilLabel(max)

	straddle := min < 0 && max > 0
	switch policy {
	case ScaleZoom:
		// tightest bounds.
	case ScaleIncludeZero:
		low, high = coverZero(low, high)
	case ScalePreferSymmetric:
		if straddle {
			low, high = symmetric(low, high)
		}
	case ScaleZeroSymmetric:
		low, high = coverZero(low, high)
		if straddle {
			low, high = symmetric(low, high)
		}
	case ScaleForceSymmetric:
		high = maxLabel(low.Abs(), high.Abs())
		low = high.Neg()
	}

	includesZero = low.Value() <= 0 && high.Value() >= 0
	return low, high, includesZero
}

func coverZero(low, high Label) (Label, Label) {
	if low.Value() > 0 {
		low = Label{}
	}
	if high.Value() < 0 {
		high = Label{}
	}
	return low, high
}

func symmetric(low, high Label) (Label, Label) {
	high = maxLabel(low.Abs(), high.Abs())
	return high.Neg(), high
}

func maxLabel(a, b Label) Label {
	if a.Less(b) {
		return b
	}
	return a
}

// floorLabel returns the largest normalized label not above v.
func floorLabel(v float64) Label {
	switch {
	case v == 0:
		return Label{}
	case v < 0:
		return ceilLabel(-v).Neg()
	}
	man, exp := split(v)
	return Label{Man: int8(math.Floor(man)), Exp: exp}
}

// ceilLabel returns the smallest normalized label not below v.
func ceilLabel(v float64) Label {
	switch {
	case v == 0:
		return Label{}
	case v < 0:
		return floorLabel(-v).Neg()
	}
	man, exp := split(v)
	m := math.Ceil(man)
	if m >= 10 {
		m = 1
		exp++
	}
	return Label{Man: int8(m), Exp: exp}
}

// split decomposes v > 0 into a mantissa in [1, 10) and its exponent.
func split(v float64) (man float64, exp int8) {
	e := int8(math.Floor(math.Log10(v)))
	man = v / k197.Pow10(e)
	// guard against log10 landing one decade off at decade boundaries.
	switch {
	case man >= 10:
		man /= 10
		e++
	case man < 1:
		man *= 10
		e--
	}
	return man, e
}
