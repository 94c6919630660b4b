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

package oplist

import (
	"testing"

	"github.com/mlnoga/ocio-core/internal/op"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

func identityMatrix16() [16]float64 {
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TestIdentityDrop covers S1: an identity matrix sandwiched between two
// exponent ops is removed by the optimizer; the exponents 2 and 0.5 then
// fuse into an identity exponent, which is dropped too, leaving no ops.
func TestIdentityDrop(t *testing.T) {
	l := New()
	if err := l.AppendExponent([4]float64{2, 2, 2, 1}, opdata.DirectionForward); err != nil {
		t.Fatalf("append exponent: %v", err)
	}
	if err := l.AppendMatrix(identityMatrix16(), [4]float64{}, opdata.DirectionForward); err != nil {
		t.Fatalf("append identity matrix: %v", err)
	}
	if err := l.AppendExponent([4]float64{0.5, 0.5, 0.5, 1}, opdata.DirectionForward); err != nil {
		t.Fatalf("append exponent: %v", err)
	}
	if err := l.Finalize(op.FlagDefault, nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected the identity matrix dropped and the two reciprocal exponents fused into a dropped identity, got %d ops left", l.Len())
	}
}

// TestExponentComposition covers S6: two contiguous Exponent ops fuse
// into one whose exponent vector is the component-wise product.
func TestExponentComposition(t *testing.T) {
	l := New()
	if err := l.AppendExponent([4]float64{2, 2, 2, 1}, opdata.DirectionForward); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.AppendExponent([4]float64{3, 3, 3, 1}, opdata.DirectionForward); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Finalize(op.FlagDefault, nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("expected the two Exponent ops fused into one, got %d", l.Len())
	}
	e := l.Ops()[0].Data().(*opdata.ExponentData)
	if e.E[0] != 6 {
		t.Errorf("fused exponent = %v, want 6", e.E[0])
	}
}

func TestAppendRejectsInvalidParameters(t *testing.T) {
	l := New()
	err := l.AppendExponent([4]float64{0, 1, 1, 1}, opdata.DirectionInverse)
	if err == nil {
		t.Fatal("expected validation error for a zero exponent component in inverse direction")
	}
	if l.Len() != 0 {
		t.Error("a rejected append should leave the list unchanged")
	}
}

func TestCannotAppendAfterFinalize(t *testing.T) {
	l := New()
	if err := l.AppendExponent([4]float64{2, 2, 2, 1}, opdata.DirectionForward); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Finalize(op.FlagDefault, nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := l.AppendExponent([4]float64{3, 3, 3, 1}, opdata.DirectionForward); err == nil {
		t.Error("appending to a finalized list should fail")
	}
}

func TestCacheIDStableAcrossClones(t *testing.T) {
	l := New()
	if err := l.AppendMatrix([16]float64{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 1,
	}, [4]float64{}, opdata.DirectionForward); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Finalize(op.FlagNone, nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	clone := l.Clone()
	if err := clone.Finalize(op.FlagNone, nil); err != nil {
		t.Fatalf("finalize clone: %v", err)
	}
	if l.CacheID() != clone.CacheID() {
		t.Errorf("clone cache ID = %q, want %q", clone.CacheID(), l.CacheID())
	}
}

func TestFromOps(t *testing.T) {
	ops := []*op.Op{
		op.New(opdata.NewExponentData([4]float64{2, 2, 2, 1}, opdata.DirectionForward)),
		op.New(opdata.NewExponentData([4]float64{3, 3, 3, 1}, opdata.DirectionForward)),
	}
	l, err := FromOps(ops)
	if err != nil {
		t.Fatalf("FromOps: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 ops, got %d", l.Len())
	}
}

func TestBakeBitDepthsInsertsRangeOps(t *testing.T) {
	l := New()
	l.InputBitDepth = opdata.BitDepthU8
	l.OutputBitDepth = opdata.BitDepthU16
	if err := l.AppendMatrix(identityMatrix16(), [4]float64{}, opdata.DirectionForward); err != nil {
		t.Fatalf("append: %v", err)
	}
	// Use a non-identity offset so the matrix does not get dropped and we
	// can observe the baked Range ops around it.
	l.Ops()[0].Data().(*opdata.MatrixData).B[0] = 0.1
	if err := l.Finalize(op.FlagDefault, nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if l.Ops()[0].Kind() != opdata.KindRange {
		t.Errorf("expected an input Range op baked at the front, got kind %v", l.Ops()[0].Kind())
	}
	if l.Ops()[len(l.Ops())-1].Kind() != opdata.KindRange {
		t.Errorf("expected an output Range op baked at the back, got kind %v", l.Ops()[len(l.Ops())-1].Kind())
	}
}
