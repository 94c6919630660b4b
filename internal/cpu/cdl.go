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

// buildCDL renders Algorithm CDL (spec §4.4): forward applies
// slope/offset/clamp/power/saturation/clamp in that order; reverse
// applies the symmetric sequence with the reciprocal/negated parameters
// already folded into RenderParams by OpData. NoClamp styles skip both
// clamp01 steps and use the pass-through-negative power mode.
func buildCDL(d *opdata.CDLData) PixelOp {
	rp := d.RenderParams()

	if !rp.Reverse {
		return func(rgba [4]float32) [4]float32 {
			var pix [3]float32
			for c := 0; c < 3; c++ {
				pix[c] = rgba[c]*rp.Slope[c] + rp.Offset[c]
			}
			if !rp.NoClamp {
				for c := 0; c < 3; c++ {
					pix[c] = kernel.Clamp01(pix[c])
				}
			}
			for c := 0; c < 3; c++ {
				pix[c] = power(pix[c], rp.Power[c], false, rp.NoClamp)
			}
			luma := kernel.LumaDot(pix, kernel.Rec709Luma)
			for c := 0; c < 3; c++ {
				pix[c] = luma + rp.Saturation*(pix[c]-luma)
			}
			if !rp.NoClamp {
				for c := 0; c < 3; c++ {
					pix[c] = kernel.Clamp01(pix[c])
				}
			}
			return [4]float32{pix[0], pix[1], pix[2], rgba[3]}
		}
	}

	// Reverse reverses the forward sequence step-for-step using the
	// reciprocal/negated parameters RenderParams already resolved:
	// clamp, de-saturate, un-power, clamp, add negated offset, scale by
	// reciprocal slope.
	return func(rgba [4]float32) [4]float32 {
		var pix [3]float32
		for c := 0; c < 3; c++ {
			pix[c] = rgba[c]
		}
		if !rp.NoClamp {
			for c := 0; c < 3; c++ {
				pix[c] = kernel.Clamp01(pix[c])
			}
		}
		luma := kernel.LumaDot(pix, kernel.Rec709Luma)
		for c := 0; c < 3; c++ {
			pix[c] = luma + rp.Saturation*(pix[c]-luma)
		}
		for c := 0; c < 3; c++ {
			pix[c] = power(pix[c], rp.Power[c], false, rp.NoClamp)
		}
		if !rp.NoClamp {
			for c := 0; c < 3; c++ {
				pix[c] = kernel.Clamp01(pix[c])
			}
		}
		for c := 0; c < 3; c++ {
			pix[c] = (pix[c] + rp.Offset[c]) * rp.Slope[c]
		}
		return [4]float32{pix[0], pix[1], pix[2], rgba[3]}
	}
}
