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

// Package lut implements the 1D/3D LUT evaluation, inversion and
// composition engines (C4 of the design): linear/nearest/half-domain 1D
// lookup, trilinear/tetrahedral 3D lookup, exact and fast 1D inversion,
// and 1D-on-1D / 3D-on-3D composition.
package lut

import (
	"math"

	"github.com/mlnoga/ocio-core/internal/opdata"
)

// hueAdjustEpsilon is the ε floor used in the DW3 hue-preservation
// rebuild step, per spec §4.5.
const hueAdjustEpsilon = 1e-10

// Eval1DChannel evaluates one channel's table at x using standard-domain
// linear or nearest interpolation, clamping out-of-range inputs to the
// nearest endpoint.
func Eval1DChannel(table []float32, interp opdata.Lut1DInterpolation, x float32) float32 {
	n := len(table)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return table[0]
	}
	t := x * float32(n-1)
	if t <= 0 {
		return table[0]
	}
	if t >= float32(n-1) {
		return table[n-1]
	}
	if interp == opdata.Lut1DInterpNearest {
		idx := int(t + 0.5)
		if idx >= n {
			idx = n - 1
		}
		return table[idx]
	}
	i := int(math.Floor(float64(t)))
	f := t - float32(i)
	return (1-f)*table[i] + f*table[i+1]
}

// HalfBits converts a float32 to the bit pattern of its nearest
// half-precision (IEEE 754 binary16) encoding, used as the lookup index
// for half-domain LUTs. Pure function, no platform intrinsics (spec §9).
func HalfBits(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xff) - 127 + 15
	mant := bits & 0x7fffff

	switch {
	case (bits>>23)&0xff == 0xff: // Inf/NaN
		if mant != 0 {
			return sign | 0x7e00 // quiet NaN
		}
		return sign | 0x7c00
	case exp >= 0x1f: // overflow -> Inf
		return sign | 0x7c00
	case exp <= 0: // subnormal or underflow
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		shift := uint(14 - exp)
		half := uint16(mant >> shift)
		// round to nearest even
		if (mant>>(shift-1))&1 != 0 && (mant&((1<<(shift-1))-1) != 0 || half&1 != 0) {
			half++
		}
		return sign | half
	default:
		halfMant := uint16(mant >> 13)
		if mant&0x1000 != 0 && (mant&0xfff != 0 || halfMant&1 != 0) {
			halfMant++
			if halfMant == 0x400 {
				halfMant = 0
				exp++
				if exp >= 0x1f {
					return sign | 0x7c00
				}
			}
		}
		return sign | uint16(exp<<10) | halfMant
	}
}

// EvalHalfDomainChannel looks up a half-domain table directly by the
// input's half-float bit pattern; lengths other than 65536 are rejected
// at OpData construction time, not here.
func EvalHalfDomainChannel(table []float32, x float32) float32 {
	idx := HalfBits(x)
	return table[idx]
}

// rgbMinMax returns the min and max of an RGB triple.
func rgbMinMax(rgb [3]float32) (min, max float32) {
	min, max = rgb[0], rgb[0]
	for _, v := range rgb[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}

// ApplyDW3HueAdjust rebuilds chroma around the max-channel axis after an
// independent per-channel 1D LUT lookup, per spec §4.5's Algorithm
// DW3: minIn/maxIn from the input triple, minOut/maxOut from the looked
// up triple, then out.rgb = minOut + (in.rgb-minIn)*(maxOut-minOut)/max(ε,maxIn-minIn).
func ApplyDW3HueAdjust(in, lookedUp [3]float32) [3]float32 {
	minIn, maxIn := rgbMinMax(in)
	minOut, maxOut := rgbMinMax(lookedUp)
	denom := maxIn - minIn
	if denom < hueAdjustEpsilon {
		denom = hueAdjustEpsilon
	}
	scale := (maxOut - minOut) / denom
	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = minOut + (in[i]-minIn)*scale
	}
	return out
}

// Eval1D looks up all three channels of a Lut1DData at one RGB pixel,
// dispatching between standard, half-domain and hue-adjusted evaluation.
func Eval1D(d *opdata.Lut1DData, in [3]float32) [3]float32 {
	var looked [3]float32
	if d.HalfDomain {
		looked = [3]float32{
			EvalHalfDomainChannel(d.R, in[0]),
			EvalHalfDomainChannel(d.G, in[1]),
			EvalHalfDomainChannel(d.B, in[2]),
		}
	} else {
		looked = [3]float32{
			Eval1DChannel(d.R, d.Interpolation, in[0]),
			Eval1DChannel(d.G, d.Interpolation, in[1]),
			Eval1DChannel(d.B, d.Interpolation, in[2]),
		}
	}
	if d.HueAdjust == opdata.Lut1DHueAdjustDW3 {
		return ApplyDW3HueAdjust(in, looked)
	}
	return looked
}
