// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package k197

import (
	"testing"
)

func TestResolveUnit(t *testing.T) {
	for _, tc := range []struct {
		name string
		ann  Annunciators
		tc   bool
		want Unit
	}{
		{
			name: "volts",
			ann:  Annunciators{Mid: annVolt},
			want: Unit{Symbol: "V"},
		},
		{
			name: "millivolts",
			ann:  Annunciators{Mid: annVolt, Post: annMilli},
			want: Unit{Symbol: "mV", Exp: -3},
		},
		{
			name: "ohms",
			ann:  Annunciators{Mid: annOhm},
			want: Unit{Symbol: "Ω"},
		},
		{
			name: "kiloohms",
			ann:  Annunciators{Mid: annOhm, Post: annKilo},
			want: Unit{Symbol: "kΩ", Exp: 3},
		},
		{
			name: "megaohms",
			ann:  Annunciators{Mid: annOhm, Post: annMega},
			want: Unit{Symbol: "MΩ", Exp: 6},
		},
		{
			name: "amps",
			ann:  Annunciators{Mid: annAmp},
			want: Unit{Symbol: "A"},
		},
		{
			name: "milliamps",
			ann:  Annunciators{Mid: annAmp, Post: annMilli},
			want: Unit{Symbol: "mA", Exp: -3},
		},
		{
			name: "microamps",
			ann:  Annunciators{Mid: annAmp, Post: annMicro},
			want: Unit{Symbol: "µA", Exp: -6},
		},
		{
			name: "volts-beat-ohms",
			ann:  Annunciators{Mid: annVolt | annOhm},
			want: Unit{Symbol: "V"},
		},
		{
			name: "no-quantity",
			ann:  Annunciators{Post: annKilo},
			want: Unit{},
		},
		{
			name: "thermocouple",
			ann:  Annunciators{Pre: annDC, Mid: annVolt, Post: annMilli},
			tc:   true,
			want: Unit{Symbol: "°C"},
		},
		{
			name: "thermocouple-needs-dc",
			ann:  Annunciators{Pre: annAC, Mid: annVolt, Post: annMilli},
			tc:   true,
			want: Unit{Symbol: "mV", Exp: -3},
		},
		{
			name: "thermocouple-needs-milli",
			ann:  Annunciators{Pre: annDC, Mid: annVolt},
			tc:   true,
			want: Unit{Symbol: "V"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveUnit(tc.ann, tc.tc)
			if got != tc.want {
				t.Fatalf("invalid unit: got=%#v, want=%#v", got, tc.want)
			}
		})
	}
}

func TestPow10(t *testing.T) {
	for _, tc := range []struct {
		exp  int8
		want float64
	}{
		{0, 1},
		{1, 10},
		{3, 1000},
		{-1, 0.1},
		{-3, 0.001},
		{6, 1e6},
	} {
		if got := Pow10(tc.exp); got != tc.want {
			t.Fatalf("invalid 10^%d: got=%v, want=%v", tc.exp, got, tc.want)
		}
	}
}
