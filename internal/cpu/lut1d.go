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

// buildLut1D renders a Lut1DData forward by direct evaluation (linear,
// nearest or half-domain, with optional DW3 hue-adjust). An Inverse op
// uses its materialized fast forward approximation if finalize built
// one (spec §4.5 "fast" mode); otherwise it falls back to the exact
// monotonize-then-binary-search inversion at apply time ("exact" mode).
func buildLut1D(d *opdata.Lut1DData) (PixelOp, error) {
	if d.Dir == opdata.DirectionForward {
		return func(rgba [4]float32) [4]float32 {
			out := lut.Eval1D(d, [3]float32{rgba[0], rgba[1], rgba[2]})
			return [4]float32{out[0], out[1], out[2], rgba[3]}
		}, nil
	}

	if d.FastInverse != nil {
		fi := d.FastInverse
		return func(rgba [4]float32) [4]float32 {
			out := lut.Eval1D(fi, [3]float32{rgba[0], rgba[1], rgba[2]})
			return [4]float32{out[0], out[1], out[2], rgba[3]}
		}, nil
	}

	return func(rgba [4]float32) [4]float32 {
		out := lut.InvertExact(d, [3]float32{rgba[0], rgba[1], rgba[2]})
		return [4]float32{out[0], out[1], out[2], rgba[3]}
	}, nil
}
