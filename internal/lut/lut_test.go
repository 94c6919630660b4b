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

package lut

import (
	"math"
	"math/rand"
	"testing"

	"github.com/valyala/fastrand"

	"github.com/mlnoga/ocio-core/internal/opdata"
)

func rampTable(n int) []float32 {
	t := make([]float32, n)
	for i := 0; i < n; i++ {
		t[i] = float32(i) / float32(n-1)
	}
	return t
}

func TestEval1DChannelIdentityRamp(t *testing.T) {
	table := rampTable(5)
	for _, x := range []float32{0, 0.25, 0.5, 0.77, 1} {
		got := Eval1DChannel(table, opdata.Lut1DInterpLinear, x)
		if math.Abs(float64(got-x)) > 1e-5 {
			t.Errorf("Eval1DChannel(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestEval1DChannelClampsOutOfRange(t *testing.T) {
	table := rampTable(4)
	if got := Eval1DChannel(table, opdata.Lut1DInterpLinear, -1); got != table[0] {
		t.Errorf("below-range input = %v, want %v", got, table[0])
	}
	if got := Eval1DChannel(table, opdata.Lut1DInterpLinear, 2); got != table[len(table)-1] {
		t.Errorf("above-range input = %v, want %v", got, table[len(table)-1])
	}
}

func TestEval1DChannelNearest(t *testing.T) {
	table := []float32{0, 10, 20, 30}
	got := Eval1DChannel(table, opdata.Lut1DInterpNearest, 0.4)
	if got != 10 {
		t.Errorf("nearest lookup = %v, want 10", got)
	}
}

func TestHalfBitsRoundTrip(t *testing.T) {
	vals := []float32{0, 1, -1, 0.5, 2.0, 65504, -65504, 1e-5, -1e-5}
	for _, v := range vals {
		bits := HalfBits(v)
		back := halfFromBits(bits)
		if math.Abs(float64(back-v)) > 0.02*math.Abs(float64(v))+1e-6 {
			t.Errorf("half round-trip %v -> bits %x -> %v, too far off", v, bits, back)
		}
	}
}

func TestHalfBitsZeroAndSign(t *testing.T) {
	if HalfBits(0) != 0 {
		t.Errorf("HalfBits(0) = %x, want 0", HalfBits(0))
	}
	neg := float32(-1.0)
	if HalfBits(neg)&0x8000 == 0 {
		t.Error("expected sign bit set for negative value")
	}
}

func TestHalfBitsInfAndNaN(t *testing.T) {
	inf := float32(math.Inf(1))
	if HalfBits(inf) != 0x7c00 {
		t.Errorf("HalfBits(+Inf) = %x, want 7c00", HalfBits(inf))
	}
	nan := float32(math.NaN())
	got := HalfBits(nan)
	if got&0x7c00 != 0x7c00 || got&0x3ff == 0 {
		t.Errorf("HalfBits(NaN) = %x, expected exponent all-ones with nonzero mantissa", got)
	}
}

func TestApplyDW3HueAdjustPreservesGray(t *testing.T) {
	in := [3]float32{0.5, 0.5, 0.5}
	looked := [3]float32{0.6, 0.6, 0.6}
	out := ApplyDW3HueAdjust(in, looked)
	if out != looked {
		t.Errorf("gray input should pass through unchanged by hue-adjust rebuild, got %v", out)
	}
}

func TestMonotonizeLiftsViolations(t *testing.T) {
	table := []float32{0, 0.5, 0.3, 0.6, 0.4, 1.0}
	mono := Monotonize(table, true)
	for i := 1; i < len(mono); i++ {
		if mono[i] < mono[i-1] {
			t.Fatalf("Monotonize result not non-decreasing at %d: %v", i, mono)
		}
	}
	if table[2] != 0.3 {
		t.Fatal("Monotonize must not mutate its input")
	}
}

func TestMonotonizePreservesTies(t *testing.T) {
	table := []float32{0, 0.2, 0.2, 0.2, 1.0}
	mono := Monotonize(table, true)
	for i, v := range table {
		if v == 0.2 && mono[i] != 0.2 {
			t.Errorf("tie at index %d not preserved: %v", i, mono[i])
		}
	}
}

func TestInvertChannelExactRoundTrip(t *testing.T) {
	forward := rampTable(17)
	for _, y := range []float32{0, 0.1, 0.5, 0.9, 1} {
		pos := InvertChannelExact(forward, y)
		got := Eval1DChannel(forward, opdata.Lut1DInterpLinear, pos)
		if math.Abs(float64(got-y)) > 1e-4 {
			t.Errorf("inversion round-trip at y=%v: got forward(%v)=%v", y, pos, got)
		}
	}
}

func TestBuildFastInverseRejectsConstantTable(t *testing.T) {
	forward := []float32{0.5, 0.5, 0.5, 0.5}
	if _, err := BuildFastInverse(forward, 16); err == nil {
		t.Fatal("expected InversionFailed for constant forward table")
	}
}

func TestBuildFastInverseApproximatesInverse(t *testing.T) {
	forward := rampTable(64)
	inv, err := BuildFastInverse(forward, 256)
	if err != nil {
		t.Fatalf("BuildFastInverse: %v", err)
	}
	for i := 0; i < len(inv); i += 32 {
		y := float32(i) / float32(len(inv)-1)
		x := Eval1DChannel(inv, opdata.Lut1DInterpLinear, y)
		got := Eval1DChannel(forward, opdata.Lut1DInterpLinear, x)
		if math.Abs(float64(got-y)) > 1e-2 {
			t.Errorf("fast inverse at y=%v: forward(inv(y))=%v", y, got)
		}
	}
}

func makeIdentityLut1D(length int, dir opdata.Direction) *opdata.Lut1DData {
	samples := make([]float32, 3*length)
	for i := 0; i < length; i++ {
		v := float32(i) / float32(length-1)
		samples[i] = v
		samples[length+i] = v
		samples[2*length+i] = v
	}
	return opdata.NewLut1DData(samples, length, opdata.Lut1DInterpLinear, false, false, opdata.Lut1DHueAdjustOff, dir)
}

func TestCompose1DIdentityWithIdentity(t *testing.T) {
	a := makeIdentityLut1D(9, opdata.DirectionForward)
	b := makeIdentityLut1D(9, opdata.DirectionForward)
	composed, err := Compose1D(a, b, ComposeResampleSmall)
	if err != nil {
		t.Fatalf("Compose1D: %v", err)
	}
	if !composed.IsIdentity() {
		t.Errorf("composing two identity LUTs should yield identity, got R=%v", composed.R)
	}
}

func TestCompose1DRejectsHueAdjustOnB(t *testing.T) {
	a := makeIdentityLut1D(5, opdata.DirectionForward)
	b := makeIdentityLut1D(5, opdata.DirectionForward)
	b.HueAdjust = opdata.Lut1DHueAdjustDW3
	if _, err := Compose1D(a, b, ComposeResampleSmall); err == nil {
		t.Fatal("expected UnsupportedCompose when B has hue adjust")
	}
}

func TestCompose1DBigResampleUpsamples(t *testing.T) {
	a := makeIdentityLut1D(5, opdata.DirectionForward)
	b := makeIdentityLut1D(5, opdata.DirectionForward)
	composed, err := Compose1D(a, b, ComposeResampleBig)
	if err != nil {
		t.Fatalf("Compose1D: %v", err)
	}
	if composed.Length < DefaultFastInverseLength {
		t.Errorf("ComposeResampleBig length = %d, want >= %d", composed.Length, DefaultFastInverseLength)
	}
}

func makeIdentityLut3D(n int, interp opdata.Lut3DInterpolation, dir opdata.Direction) *opdata.Lut3DData {
	samples := make([]float32, 3*n*n*n)
	for r := 0; r < n; r++ {
		for g := 0; g < n; g++ {
			for b := 0; b < n; b++ {
				idx := 3 * ((r*n+g)*n + b)
				samples[idx] = float32(r) / float32(n-1)
				samples[idx+1] = float32(g) / float32(n-1)
				samples[idx+2] = float32(b) / float32(n-1)
			}
		}
	}
	return opdata.NewLut3DData(samples, n, interp, dir)
}

func TestEval3DTrilinearIdentity(t *testing.T) {
	cube := makeIdentityLut3D(5, opdata.Lut3DInterpTrilinear, opdata.DirectionForward)
	for _, v := range []float32{0.1, 0.37, 0.9} {
		out := Eval3DTrilinear(cube, v, v, v)
		for c := 0; c < 3; c++ {
			if math.Abs(float64(out[c]-v)) > 1e-5 {
				t.Errorf("trilinear identity cube at %v: out[%d]=%v", v, c, out[c])
			}
		}
	}
}

func TestEval3DTetrahedralMatchesTrilinearAtCorners(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := 4
	samples := make([]float32, 3*n*n*n)
	for i := range samples {
		samples[i] = rng.Float32()
	}
	cube := opdata.NewLut3DData(samples, n, opdata.Lut3DInterpTetrahedral, opdata.DirectionForward)
	for r := 0; r < n; r++ {
		for g := 0; g < n; g++ {
			for b := 0; b < n; b++ {
				x := float32(r) / float32(n-1)
				y := float32(g) / float32(n-1)
				z := float32(b) / float32(n-1)
				tri := Eval3DTrilinear(cube, x, y, z)
				tet := Eval3DTetrahedral(cube, x, y, z)
				if tri != tet {
					t.Fatalf("corner (%d,%d,%d): trilinear %v != tetrahedral %v", r, g, b, tri, tet)
				}
			}
		}
	}
}

func TestEval3DTetrahedralInteriorCloseToTrilinear(t *testing.T) {
	cube := makeIdentityLut3D(5, opdata.Lut3DInterpTetrahedral, opdata.DirectionForward)
	out := Eval3DTetrahedral(cube, 0.3, 0.6, 0.45)
	want := [3]float32{0.3, 0.6, 0.45}
	for c := 0; c < 3; c++ {
		if math.Abs(float64(out[c]-want[c])) > 1e-5 {
			t.Errorf("identity cube tetrahedral interior: out[%d]=%v, want %v", c, out[c], want[c])
		}
	}
}

func TestCompose3DIdentityWithIdentity(t *testing.T) {
	a := makeIdentityLut3D(5, opdata.Lut3DInterpTrilinear, opdata.DirectionForward)
	b := makeIdentityLut3D(5, opdata.Lut3DInterpTrilinear, opdata.DirectionForward)
	composed, err := Compose3D(a, b)
	if err != nil {
		t.Fatalf("Compose3D: %v", err)
	}
	if !composed.IsIdentity() {
		t.Error("composing two identity cubes should yield identity")
	}
}

// Randomized property test in the style of the teacher's qsort_test.go
// (fastrand.RNG over many random permutations): for any table, however
// scrambled, Monotonize must return a non-decreasing sequence and
// InvertChannelExact must return a position within [0, 1].
func TestMonotonizeAndInvertExactOnRandomTables(t *testing.T) {
	rng := fastrand.RNG{}
	for trial := 0; trial < 200; trial++ {
		n := 2 + int(rng.Uint32n(30))
		table := make([]float32, n)
		for i := range table {
			table[i] = float32(rng.Uint32n(1000)) / 1000
		}
		mono := Monotonize(table, true)
		for i := 1; i < len(mono); i++ {
			if mono[i] < mono[i-1] {
				t.Fatalf("trial %d: Monotonize result not non-decreasing at %d: %v", trial, i, mono)
			}
		}
		y := float32(rng.Uint32n(1000)) / 1000
		pos := InvertChannelExact(mono, y)
		if pos < 0 || pos > 1 {
			t.Fatalf("trial %d: InvertChannelExact(%v) = %v, want within [0,1]", trial, y, pos)
		}
	}
}

func TestCompose3DWith1DAppliesShaper(t *testing.T) {
	cube := makeIdentityLut3D(3, opdata.Lut3DInterpTrilinear, opdata.DirectionForward)
	shaper := makeIdentityLut1D(5, opdata.DirectionForward)
	// shaper scaled by 0.5 on all channels
	for i := range shaper.R {
		shaper.R[i] *= 0.5
		shaper.G[i] *= 0.5
		shaper.B[i] *= 0.5
	}
	out := Compose3DWith1D(cube, shaper)
	corner := out.At(2, 2, 2)
	for c := 0; c < 3; c++ {
		if math.Abs(float64(corner[c]-0.5)) > 1e-5 {
			t.Errorf("Compose3DWith1D top corner channel %d = %v, want 0.5", c, corner[c])
		}
	}
}
