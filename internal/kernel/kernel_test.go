// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package kernel

import (
	"math"
	"testing"
)

func TestClampNaNMapsToLo(t *testing.T) {
	got := Clamp(float32(math.NaN()), 1, 5)
	if got != 1 {
		t.Errorf("Clamp(NaN, 1, 5) = %v, want 1 (lo)", got)
	}
}

func TestClampRange(t *testing.T) {
	cases := []struct{ x, lo, hi, want float32 }{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}
	for _, tc := range cases {
		if got := Clamp(tc.x, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%v,%v,%v)=%v, want %v", tc.x, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestPowerModesAgreeOnNonNegativeFinite(t *testing.T) {
	bases := []float32{0, 0.1, 0.5, 1, 2, 10}
	exps := []float32{0.5, 1, 2, 2.4}
	for _, b := range bases {
		for _, e := range exps {
			a := PowerClamped(b, e)
			c := PowerPassThroughNegative(b, e)
			if math.Abs(float64(a-c)) > 1e-5 {
				t.Errorf("power modes disagree at base=%v exp=%v: clamped=%v passthrough=%v", b, e, a, c)
			}
		}
	}
}

func TestPowerClampedNegativeBase(t *testing.T) {
	got := PowerClamped(-2, 2)
	if got != 0 {
		t.Errorf("PowerClamped(-2,2) = %v, want 0", got)
	}
}

func TestPowerPassThroughNegativeBase(t *testing.T) {
	got := PowerPassThroughNegative(-2, 2)
	if got != -2 {
		t.Errorf("PowerPassThroughNegative(-2,2) = %v, want -2 (unchanged)", got)
	}
}

func TestPowerPassThroughNaN(t *testing.T) {
	got := PowerPassThroughNegative(float32(math.NaN()), 2)
	if got != 0 {
		t.Errorf("PowerPassThroughNegative(NaN,2) = %v, want 0", got)
	}
}

func TestLumaDotDefaultCoefficients(t *testing.T) {
	got := LumaDot([3]float32{0.8, 0.2, 0.1}, Rec709Luma)
	want := float32(0.2126*0.8 + 0.7152*0.2 + 0.0722*0.1)
	if math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("LumaDot = %v, want %v", got, want)
	}
}

func TestReciprocalFloors(t *testing.T) {
	got := Reciprocal(0, 1e-2)
	want := float32(100)
	if math.Abs(float64(got-want)) > 1e-4 {
		t.Errorf("Reciprocal(0, 1e-2) = %v, want %v", got, want)
	}
}

func TestFastPowerClampedApproximatesExact(t *testing.T) {
	bases := []float32{0.01, 0.1, 0.5, 1, 2, 10}
	exps := []float32{0.5, 1, 2}
	for _, b := range bases {
		for _, e := range exps {
			exact := PowerClamped(b, e)
			fast := FastPowerClamped(b, e)
			if exact == 0 {
				continue
			}
			relErr := math.Abs(float64(fast-exact)) / float64(exact)
			if relErr > 0.1 {
				t.Errorf("FastPowerClamped(%v,%v)=%v too far from exact %v (relErr %v)", b, e, fast, exact, relErr)
			}
		}
	}
}

func TestFastPowerClampedZero(t *testing.T) {
	if got := FastPowerClamped(0, 2); got != 0 {
		t.Errorf("FastPowerClamped(0,2) = %v, want 0", got)
	}
	if got := FastPowerClamped(0, 0); got != 1 {
		t.Errorf("FastPowerClamped(0,0) = %v, want 1", got)
	}
}
