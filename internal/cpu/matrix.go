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

package cpu

import (
	"github.com/mlnoga/ocio-core/internal/opdata"
	"gonum.org/v1/gonum/mat"
)

// buildMatrix flattens d's gonum matrix into a plain [4][4]float32 once,
// so the returned PixelOp never touches mat.Dense on the hot path. An
// inverse-direction op is rendered by inverting M and re-deriving the
// offset once at build time: out = M^-1*(in-b).
func buildMatrix(d *opdata.MatrixData) PixelOp {
	src := d.M
	bIn := d.B
	if d.Dir == opdata.DirectionInverse {
		var inv mat.Dense
		if err := inv.Inverse(d.M); err == nil {
			src = &inv
		}
		// A singular matrix has no valid inverse; fall back to M itself
		// rather than fail, matching the no-allocation/no-error hot path
		// contract (finalize-time validation is expected to catch this).
	}
	var m [4][4]float32
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r][c] = float32(src.At(r, c))
		}
	}
	var b [4]float32
	if d.Dir == opdata.DirectionInverse {
		bVec := mat.NewVecDense(4, bIn[:])
		var negB mat.VecDense
		negB.MulVec(src, bVec)
		for i := 0; i < 4; i++ {
			b[i] = -float32(negB.AtVec(i))
		}
	} else {
		for i := 0; i < 4; i++ {
			b[i] = float32(bIn[i])
		}
	}
	return func(rgba [4]float32) [4]float32 {
		var out [4]float32
		for r := 0; r < 4; r++ {
			out[r] = m[r][0]*rgba[0] + m[r][1]*rgba[1] + m[r][2]*rgba[2] + m[r][3]*rgba[3] + b[r]
		}
		return out
	}
}
