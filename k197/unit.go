// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package k197

// Unit is the display-facing unit derived from the annunciator flags:
// a symbol plus the power-of-ten exponent of the active range prefix.
type Unit struct {
	Symbol string
	Exp    int8
}

// Pow10 returns 10^exp.
func Pow10(exp int8) float64 {
	n := int(exp)
	if n < 0 {
		v := 1.0
		for i := 0; i < -n; i++ {
			v *= 10
		}
		return 1 / v
	}
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// ResolveUnit derives the unit from the annunciators.
//
// When thermocouple mode is active and the resolved unit is DC
// millivolt, the display-facing unit becomes °C instead; no
// power-of-ten scaling applies to temperature.
func ResolveUnit(ann Annunciators, thermocouple bool) Unit {
	var u Unit
	switch {
	case ann.Volt():
		switch {
		case ann.Milli():
			u = Unit{Symbol: "mV", Exp: -3}
		default:
			u = Unit{Symbol: "V"}
		}
	case ann.Ohm():
		switch {
		case ann.Mega():
			u = Unit{Symbol: "MΩ", Exp: 6}
		case ann.Kilo():
			u = Unit{Symbol: "kΩ", Exp: 3}
		default:
			u = Unit{Symbol: "Ω"}
		}
	case ann.Amp():
		switch {
		case ann.Micro():
			u = Unit{Symbol: "µA", Exp: -6}
		case ann.Milli():
			u = Unit{Symbol: "mA", Exp: -3}
		default:
			u = Unit{Symbol: "A"}
		}
	}

	if thermocouple && u.Symbol == "mV" && ann.DC() {
		u = Unit{Symbol: "°C"}
	}

	return u
}
