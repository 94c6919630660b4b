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
	"github.com/mlnoga/ocio-core/internal/lut"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// buildLut3D renders a Lut3DData forward by trilinear or tetrahedral
// lookup. An Inverse op has no exact inversion algorithm (unlike
// Lut1D); it requires a materialized fast forward approximation, built
// by Op.Finalize when LUT_INV_FAST is set. Calling this before
// that materialization is a finalize-order bug the caller's optimizer
// pass is responsible for preventing, so the renderer falls back to the
// identity transform rather than returning an error on the allocation-
// free apply hot path.
func buildLut3D(d *opdata.Lut3DData) PixelOp {
	active := d
	if d.Dir == opdata.DirectionInverse {
		if d.FastInverse == nil {
			return identityOp
		}
		active = d.FastInverse
	}
	return func(rgba [4]float32) [4]float32 {
		out := lut.Eval3D(active, rgba[0], rgba[1], rgba[2])
		return [4]float32{out[0], out[1], out[2], rgba[3]}
	}
}
