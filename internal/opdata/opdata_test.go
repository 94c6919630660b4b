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

package opdata

import (
	"math"
	"testing"
)

func TestMatrixIdentity(t *testing.T) {
	m := NewIdentityMatrixData(DirectionForward)
	if !m.IsIdentity() {
		t.Fatal("identity matrix not detected as identity")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestMatrixMultiply(t *testing.T) {
	scale2 := NewMatrixData([16]float64{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 1,
	}, [4]float64{0, 0, 0, 0}, DirectionForward)
	addOne := NewMatrixData([16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}, [4]float64{1, 1, 1, 0}, DirectionForward)

	fused := scale2.Multiply(addOne)
	// out = addOne(scale2(in)) = 2*in + 1
	if fused.B[0] != 1 {
		t.Errorf("fused offset = %v, want 1", fused.B[0])
	}
	if fused.M.At(0, 0) != 2 {
		t.Errorf("fused scale = %v, want 2", fused.M.At(0, 0))
	}
}

func TestCacheIDStability(t *testing.T) {
	a := NewMatrixData([16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, [4]float64{0.1, 0, 0, 0}, DirectionForward)
	b := NewMatrixData([16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, [4]float64{0.1, 0, 0, 0}, DirectionForward)
	if a.CacheID() != b.CacheID() {
		t.Errorf("identical params produced different cache IDs: %q vs %q", a.CacheID(), b.CacheID())
	}
	c := NewMatrixData([16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, [4]float64{0.1000001, 0, 0, 0}, DirectionForward)
	if a.CacheID() == c.CacheID() {
		t.Errorf("differing params produced the same cache ID")
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := NewMatrixData([16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, [4]float64{0, 0, 0, 0}, DirectionForward)
	clone := orig.Clone().(*MatrixData)
	clone.M.Set(0, 0, 99)
	if orig.M.At(0, 0) == 99 {
		t.Fatal("clone is not independent of original")
	}
}

func TestExponentComposeToIdentity(t *testing.T) {
	a := NewExponentData([4]float64{2, 2, 2, 1}, DirectionForward)
	b := NewExponentData([4]float64{0.5, 0.5, 0.5, 1}, DirectionForward)
	fused := a.Multiply(b)
	if !fused.IsIdentity() {
		t.Errorf("expected fused exponents to be identity, got %v", fused.E)
	}
}

func TestExponentInverseZeroInvalid(t *testing.T) {
	e := NewExponentData([4]float64{0, 1, 1, 1}, DirectionInverse)
	if err := e.Validate(); err == nil {
		t.Fatal("expected validation error for zero exponent in inverse direction")
	}
}

func TestRangeValidatesMinMax(t *testing.T) {
	r := NewRangeData(1, 0, 0, 1, DirectionForward)
	if err := r.Validate(); err == nil {
		t.Fatal("expected validation error for minIn > maxIn")
	}
}

func TestGradingPrimaryPivotValidation(t *testing.T) {
	d := &GradingPrimaryData{
		Style: GradingPrimaryStyleVideo, Lift: GradingRGBM{}, Gain: GradingRGBM{Master: 1},
		Gamma: GradingRGBM{Master: 1}, PivotBlack: 0.5, PivotWhite: 0.1, Dir: DirectionForward,
	}
	if err := d.Validate(); err == nil {
		t.Fatal("expected error when pivotWhite <= pivotBlack")
	}
}

func TestGradingPrimaryLogPreRender(t *testing.T) {
	d := &GradingPrimaryData{
		Style:      GradingPrimaryStyleLog,
		Brightness: GradingRGBM{Master: 0},
		Contrast:   GradingRGBM{Master: 1},
		Gamma:      GradingRGBM{Master: 1},
		Pivot:      0,
		PivotBlack: 0, PivotWhite: 1,
		Dir: DirectionForward,
	}
	pr := d.PreRender()
	if math.Abs(pr.Pivot-0.5) > 1e-9 {
		t.Errorf("pivot = %v, want 0.5", pr.Pivot)
	}
	if pr.C[0] != 1 || pr.G[0] != 1 || pr.B[0] != 0 {
		t.Errorf("identity parameters did not pre-render to identity: %+v", pr)
	}
}

func TestLut1DIdentity(t *testing.T) {
	length := 5
	samples := make([]float32, 3*length)
	for i := 0; i < length; i++ {
		v := float32(i) / float32(length-1)
		samples[i] = v
		samples[length+i] = v
		samples[2*length+i] = v
	}
	l := NewLut1DData(samples, length, Lut1DInterpLinear, false, false, Lut1DHueAdjustOff, DirectionForward)
	if !l.IsIdentity() {
		t.Fatal("expected ramp LUT to be identity")
	}
}

func TestLut1DValidateHalfDomainLength(t *testing.T) {
	l := NewLut1DData(make([]float32, 3*10), 10, Lut1DInterpLinear, true, false, Lut1DHueAdjustOff, DirectionForward)
	if err := l.Validate(); err == nil {
		t.Fatal("expected error: half-domain LUT must have length 65536")
	}
}

func TestLut3DValidateGridSize(t *testing.T) {
	l := NewLut3DData(make([]float32, 3), 1, Lut3DInterpTrilinear, DirectionForward)
	if err := l.Validate(); err == nil {
		t.Fatal("expected error for grid size < 2")
	}
}

// Two Lut1D tables that differ only at an unprobed position (any index
// that isn't one of a handful of evenly-spaced samples) must still
// produce distinct cache IDs.
func TestLut1DCacheIDDistinguishesUnprobedSamples(t *testing.T) {
	length := 64
	samples := make([]float32, 3*length)
	for i := 0; i < length; i++ {
		v := float32(i) / float32(length-1)
		samples[i], samples[length+i], samples[2*length+i] = v, v, v
	}
	a := NewLut1DData(samples, length, Lut1DInterpLinear, false, false, Lut1DHueAdjustOff, DirectionForward)

	altered := append([]float32(nil), samples...)
	altered[length/2+3] += 0.001 // an index a handful of evenly-spaced probes would likely skip
	b := NewLut1DData(altered, length, Lut1DInterpLinear, false, false, Lut1DHueAdjustOff, DirectionForward)

	if a.CacheID() == b.CacheID() {
		t.Fatal("Lut1D tables differing at one sample produced identical cache IDs")
	}
}

// Same property for Lut3D: a change deep inside the cube, away from any
// evenly-spaced probe position, must change the cache ID.
func TestLut3DCacheIDDistinguishesUnprobedSamples(t *testing.T) {
	n := 5
	samples := make([]float32, 3*n*n*n)
	for i := range samples {
		samples[i] = float32(i) / float32(len(samples))
	}
	a := NewLut3DData(samples, n, Lut3DInterpTrilinear, DirectionForward)

	altered := append([]float32(nil), samples...)
	altered[37] += 0.001
	b := NewLut3DData(altered, n, Lut3DInterpTrilinear, DirectionForward)

	if a.CacheID() == b.CacheID() {
		t.Fatal("Lut3D cubes differing at one sample produced identical cache IDs")
	}
}

func TestNoOpIsAlwaysIdentity(t *testing.T) {
	n := NewNoOpData(KindFileNoOp, "some/file.clf")
	if !n.IsIdentity() || !n.IsNoOp() {
		t.Fatal("NoOpData must always report identity/no-op")
	}
}
