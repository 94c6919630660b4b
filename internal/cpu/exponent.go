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

// buildExponent renders out[c] = max(0,in[c])^exp[c] per RGBA channel
// using the clamped power mode (spec §4.4 "Exponent"). An Inverse
// direction op applies the reciprocal exponent; Validate already
// rejects a zero component in that direction.
func buildExponent(d *opdata.ExponentData, opts Options) PixelOp {
	var e [4]float32
	for i, v := range d.E {
		if d.Dir == opdata.DirectionInverse {
			e[i] = float32(1.0 / v)
		} else {
			e[i] = float32(v)
		}
	}
	fastPower := opts.FastPower
	return func(rgba [4]float32) [4]float32 {
		var out [4]float32
		for c := 0; c < 4; c++ {
			out[c] = power(rgba[c], e[c], fastPower, false)
		}
		return out
	}
}
