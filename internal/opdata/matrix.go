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
	"fmt"

	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"gonum.org/v1/gonum/mat"
)

// MatrixData is a 4x4 matrix plus a 4-vector offset: out = M*in + b.
// Non-singularity is not required; identity is detected by exact
// equality to the identity matrix and zero offset.
type MatrixData struct {
	M *mat.Dense // 4x4
	B [4]float64
	Dir Direction
}

var _ OpData = (*MatrixData)(nil)

// NewMatrixData builds a MatrixData from a row-major 4x4 matrix and a
// 4-vector offset, as accepted by the op_list.append_matrix external
// interface (§6).
func NewMatrixData(m [16]float64, b [4]float64, dir Direction) *MatrixData {
	d := mat.NewDense(4, 4, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			d.Set(r, c, m[r*4+c])
		}
	}
	return &MatrixData{M: d, B: b, Dir: dir}
}

// NewIdentityMatrixData returns the 4x4 identity matrix with zero
// offset, used by S1's identity-drop scenario and as a fusion seed.
func NewIdentityMatrixData(dir Direction) *MatrixData {
	return NewMatrixData([16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}, [4]float64{0, 0, 0, 0}, dir)
}

func (d *MatrixData) Kind() Kind { return KindMatrix }

func (d *MatrixData) Validate() error {
	if d.M == nil {
		return &ocioerr.InvalidParameter{Kind: "Matrix", Reason: "matrix is nil"}
	}
	r, c := d.M.Dims()
	if r != 4 || c != 4 {
		return &ocioerr.InvalidParameter{Kind: "Matrix", Reason: fmt.Sprintf("matrix must be 4x4, got %dx%d", r, c)}
	}
	if d.Dir == DirectionUnknown {
		return &ocioerr.InvalidParameter{Kind: "Matrix", Reason: "direction is unknown"}
	}
	return nil
}

func (d *MatrixData) IsIdentity() bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			want := 0.0
			if r == c {
				want = 1.0
			}
			if d.M.At(r, c) != want {
				return false
			}
		}
	}
	for _, b := range d.B {
		if b != 0 {
			return false
		}
	}
	return true
}

func (d *MatrixData) IsNoOp() bool { return d.IsIdentity() }

func (d *MatrixData) CacheID() string {
	vals := make([]float64, 0, 20)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			vals = append(vals, d.M.At(r, c))
		}
	}
	vals = append(vals, d.B[0], d.B[1], d.B[2], d.B[3])
	return buildCacheID(KindMatrix,
		"m="+formatFloats(vals),
		"dir="+d.Dir.String(),
	)
}

func (d *MatrixData) Clone() OpData {
	m := mat.NewDense(4, 4, nil)
	m.Copy(d.M)
	return &MatrixData{M: m, B: d.B, Dir: d.Dir}
}

// Multiply composes this matrix op with next (this applied first),
// matching the "Matrix ∘ Matrix" composition rule: multiply the two 4x4
// matrices and transform the offsets, out = N*(M*in+b) + c = (N*M)*in +
// (N*b+c).
func (d *MatrixData) Multiply(next *MatrixData) *MatrixData {
	var nm mat.Dense
	nm.Mul(next.M, d.M)

	bVec := mat.NewVecDense(4, d.B[:])
	var nb mat.VecDense
	nb.MulVec(next.M, bVec)

	var combinedB [4]float64
	for i := 0; i < 4; i++ {
		combinedB[i] = nb.AtVec(i) + next.B[i]
	}
	out := &MatrixData{M: &nm, B: combinedB, Dir: d.Dir}
	return out
}
