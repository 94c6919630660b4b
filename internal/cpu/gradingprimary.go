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
	"github.com/mlnoga/ocio-core/internal/kernel"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// buildGradingPrimary renders Algorithm Grading (spec §4.4). Forward
// applies pix = pix + b; pix = (pix-pivot)*c + pivot; pix =
// sign(pix)*|pix|^g, per channel, using the pre-rendered triple the
// OpData computed from the style-specific artist parameters. Inverting
// that composition requires reversing the stage order, not just
// substituting the reciprocal/negated triple from Invert(): inverse
// applies pix = sign(pix)*|pix|^g (g already reciprocal), then
// pix = (pix-pivot)*c + pivot (c already reciprocal), then pix = pix + b
// (b already negated) last — power, then pivot-scale, then add, mirroring
// the stage-reversal internal/cpu/exposurecontrast.go's inverse path
// uses for its analogous three-stage pipeline.
func buildGradingPrimary(d *opdata.GradingPrimaryData) PixelOp {
	pr := d.PreRender()
	clampEnabled := d.ClampEnabled
	lo, hi := float32(d.ClampBlack), float32(d.ClampWhite)
	pivot := float32(pr.Pivot)

	if d.Dir == opdata.DirectionInverse {
		inv := pr.Invert()
		var b, c, g [3]float32
		for i := 0; i < 3; i++ {
			b[i] = float32(inv.B[i])
			c[i] = float32(inv.C[i])
			g[i] = float32(inv.G[i])
		}
		return func(rgba [4]float32) [4]float32 {
			var out [4]float32
			for ch := 0; ch < 3; ch++ {
				v := kernel.Sign(rgba[ch]) * kernel.PowerClamped(absF32(rgba[ch]), g[ch])
				v = (v-pivot)*c[ch] + pivot
				v = v + b[ch]
				if clampEnabled {
					v = kernel.Clamp(v, lo, hi)
				}
				out[ch] = v
			}
			out[3] = rgba[3]
			return out
		}
	}

	var b, c, g [3]float32
	for i := 0; i < 3; i++ {
		b[i] = float32(pr.B[i])
		c[i] = float32(pr.C[i])
		g[i] = float32(pr.G[i])
	}
	return func(rgba [4]float32) [4]float32 {
		var out [4]float32
		for ch := 0; ch < 3; ch++ {
			v := rgba[ch] + b[ch]
			v = (v-pivot)*c[ch] + pivot
			v = kernel.Sign(v) * kernel.PowerClamped(absF32(v), g[ch])
			if clampEnabled {
				v = kernel.Clamp(v, lo, hi)
			}
			out[ch] = v
		}
		out[3] = rgba[3]
		return out
	}
}

func absF32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
