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
	"math"

	"github.com/mlnoga/ocio-core/internal/kernel"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// buildExposureContrast renders the single-pivot building block
// GradingPrimary's linear/video styles are modeled on: exposure is a
// linear multiplier 2^exposure, contrast is a linear scale about pivot,
// gamma is an additional power term. Style only changes whether the
// pivot is interpreted linearly or video-referred (both use the same
// apply kernel here since the caller already resolves the pivot value).
func buildExposureContrast(d *opdata.ExposureContrastData, opts Options) PixelOp {
	expScale := float32(math.Exp2(d.Exposure))
	contrast := float32(d.Contrast)
	gamma := float32(d.Gamma)
	pivot := float32(d.Pivot)
	fastPower := opts.FastPower

	forward := func(rgba [4]float32) [4]float32 {
		var out [4]float32
		for c := 0; c < 3; c++ {
			v := rgba[c] * expScale
			v = (v-pivot)*contrast + pivot
			v = power(v, gamma, fastPower, false)
			out[c] = v
		}
		out[3] = rgba[3]
		return out
	}
	if d.Dir == opdata.DirectionForward {
		return forward
	}

	invContrast := kernel.Reciprocal(contrast, 1e-6)
	invGamma := kernel.Reciprocal(gamma, 1e-6)
	invExpScale := 1 / expScale
	return func(rgba [4]float32) [4]float32 {
		var out [4]float32
		for c := 0; c < 3; c++ {
			v := power(rgba[c], invGamma, fastPower, false)
			v = (v-pivot)*invContrast + pivot
			v = v * invExpScale
			out[c] = v
		}
		out[3] = rgba[3]
		return out
	}
}
