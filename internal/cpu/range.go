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

import "github.com/mlnoga/ocio-core/internal/opdata"

// buildRange renders a RangeData as the three-region piecewise linear
// mapping spec §4.4 describes: below minIn, in range, above maxIn.
// Unclamped sides skip their min/max test entirely. Alpha passes
// through unchanged.
func buildRange(d *opdata.RangeData) PixelOp {
	minIn, maxIn := float32(d.MinIn), float32(d.MaxIn)
	minOut, maxOut := float32(d.MinOut), float32(d.MaxOut)
	clampMinIn, clampMaxIn := d.ClampMinIn, d.ClampMaxIn

	scale := float32(1)
	if maxIn != minIn {
		scale = (maxOut - minOut) / (maxIn - minIn)
	}

	if d.Dir == opdata.DirectionInverse {
		// Inverse maps [minOut,maxOut] back to [minIn,maxIn]; the clamp
		// sides follow the output bounds instead of the input ones.
		invScale := float32(1)
		if scale != 0 {
			invScale = 1 / scale
		}
		return func(rgba [4]float32) [4]float32 {
			var out [4]float32
			for c := 0; c < 3; c++ {
				v := minIn + (rgba[c]-minOut)*invScale
				if clampMinIn && v < minIn {
					v = minIn
				}
				if clampMaxIn && v > maxIn {
					v = maxIn
				}
				out[c] = v
			}
			out[3] = rgba[3]
			return out
		}
	}

	return func(rgba [4]float32) [4]float32 {
		var out [4]float32
		for c := 0; c < 3; c++ {
			v := rgba[c]
			if clampMinIn && v < minIn {
				v = minIn
			}
			if clampMaxIn && v > maxIn {
				v = maxIn
			}
			out[c] = minOut + (v-minIn)*scale
		}
		out[3] = rgba[3]
		return out
	}
}
