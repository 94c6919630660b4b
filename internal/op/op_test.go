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

package op

import (
	"testing"

	"github.com/mlnoga/ocio-core/internal/lut"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

func scaleMatrix(factor float64, dir opdata.Direction) *opdata.MatrixData {
	return opdata.NewMatrixData([16]float64{
		factor, 0, 0, 0,
		0, factor, 0, 0,
		0, 0, factor, 0,
		0, 0, 0, 1,
	}, [4]float64{0, 0, 0, 0}, dir)
}

func TestIsSameType(t *testing.T) {
	a := New(scaleMatrix(2, opdata.DirectionForward))
	b := New(scaleMatrix(3, opdata.DirectionForward))
	c := New(opdata.NewExponentData([4]float64{1, 1, 1, 1}, opdata.DirectionForward))
	if !a.IsSameType(b) {
		t.Error("two Matrix ops should be the same type regardless of parameters")
	}
	if a.IsSameType(c) {
		t.Error("Matrix and Exponent ops should not be the same type")
	}
}

func TestIsInverseMatrix(t *testing.T) {
	fwd := New(scaleMatrix(2, opdata.DirectionForward))
	inv := New(scaleMatrix(2, opdata.DirectionInverse))
	other := New(scaleMatrix(3, opdata.DirectionInverse))
	if !fwd.IsInverse(inv) {
		t.Error("forward and inverse scale-by-2 matrices should be inverses")
	}
	if fwd.IsInverse(other) {
		t.Error("scale-by-2 forward and scale-by-3 inverse should not be inverses")
	}
}

func TestCanCombineWithMatrix(t *testing.T) {
	a := New(scaleMatrix(2, opdata.DirectionForward))
	b := New(scaleMatrix(3, opdata.DirectionForward))
	if !a.CanCombineWith(b) {
		t.Fatal("two Matrix ops should combine")
	}
	combined, err := a.CombineWith(b, lut.ComposeResampleSmall)
	if err != nil {
		t.Fatalf("CombineWith: %v", err)
	}
	if len(combined) != 1 {
		t.Fatalf("expected a single fused op, got %d", len(combined))
	}
	fusedData := combined[0].Data().(*opdata.MatrixData)
	if got := fusedData.M.At(0, 0); got != 6 {
		t.Errorf("fused scale factor = %v, want 6", got)
	}
}

func TestCannotCombineDifferentKinds(t *testing.T) {
	a := New(scaleMatrix(2, opdata.DirectionForward))
	b := New(opdata.NewExponentData([4]float64{1, 1, 1, 1}, opdata.DirectionForward))
	if a.CanCombineWith(b) {
		t.Error("Matrix and Exponent should not report combinable")
	}
}

func TestHasChannelCrosstalk(t *testing.T) {
	diag := New(scaleMatrix(2, opdata.DirectionForward))
	if diag.HasChannelCrosstalk() {
		t.Error("a diagonal matrix should not have channel crosstalk")
	}
	offDiag := New(opdata.NewMatrixData([16]float64{
		1, 0.5, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}, [4]float64{}, opdata.DirectionForward))
	if !offDiag.HasChannelCrosstalk() {
		t.Error("an off-diagonal matrix should have channel crosstalk")
	}
}

func TestFinalizeComputesCacheID(t *testing.T) {
	o := New(scaleMatrix(2, opdata.DirectionForward))
	if o.Finalized() {
		t.Fatal("a freshly constructed op should not be finalized")
	}
	if err := o.Finalize(FlagDefault); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !o.Finalized() {
		t.Error("Finalize should mark the op as finalized")
	}
	if o.CacheID() == "" {
		t.Error("CacheID should be non-empty after Finalize")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	o := New(scaleMatrix(2, opdata.DirectionForward))
	if err := o.Finalize(FlagDefault); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	clone := o.Clone()
	if clone.Finalized() {
		t.Error("a clone should not inherit the finalized flag")
	}
	clone.Data().(*opdata.MatrixData).M.Set(0, 0, 99)
	if o.Data().(*opdata.MatrixData).M.At(0, 0) == 99 {
		t.Error("mutating a clone's data should not affect the original")
	}
}

func TestOptimizationFlagsHas(t *testing.T) {
	f := FlagIdentity | FlagMatrixFusion
	if !f.Has(FlagIdentity) {
		t.Error("flags should report FlagIdentity set")
	}
	if f.Has(FlagLutInvExact) {
		t.Error("flags should not report FlagLutInvExact set")
	}
}
