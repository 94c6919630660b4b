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

package lut

import (
	"math"

	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// ComposeResample selects how Compose1D picks its output length:
// ResampleSmall takes max(|A|,|B|); ResampleBig upsamples to at least
// 4096 entries when that would otherwise lose precision, matching spec
// §4.5's "COMPOSE_RESAMPLE_BIG".
type ComposeResample int

const (
	ComposeResampleSmall ComposeResample = iota
	ComposeResampleBig
)

// Compose1D implements Lut1DOpData::Compose(A, B, flags): samples
// B(A(x)) at L_out evenly spaced points across A's domain. The composed
// LUT inherits A's half-domain and hue-adjust flags; B's hue adjust is
// forbidden and fails with UnsupportedCompose.
func Compose1D(a, b *opdata.Lut1DData, resample ComposeResample) (*opdata.Lut1DData, error) {
	if b.HueAdjust != opdata.Lut1DHueAdjustOff {
		return nil, &ocioerr.UnsupportedCompose{AKind: "Lut1D", BKind: "Lut1D"}
	}

	lOut := a.Length
	if b.Length > lOut {
		lOut = b.Length
	}
	if resample == ComposeResampleBig && lOut < DefaultFastInverseLength {
		lOut = DefaultFastInverseLength
	}
	if a.HalfDomain {
		lOut = 65536
	}

	r := make([]float32, lOut)
	g := make([]float32, lOut)
	bOut := make([]float32, lOut)

	for i := 0; i < lOut; i++ {
		var x float32
		if a.HalfDomain {
			x = halfFromBits(uint16(i))
		} else if lOut > 1 {
			x = float32(i) / float32(lOut-1)
		}
		ar := evalChannelStandalone(a.R, a.HalfDomain, a.Interpolation, x)
		ag := evalChannelStandalone(a.G, a.HalfDomain, a.Interpolation, x)
		ab := evalChannelStandalone(a.B, a.HalfDomain, a.Interpolation, x)

		r[i] = evalChannelStandalone(b.R, b.HalfDomain, b.Interpolation, ar)
		g[i] = evalChannelStandalone(b.G, b.HalfDomain, b.Interpolation, ag)
		bOut[i] = evalChannelStandalone(b.B, b.HalfDomain, b.Interpolation, ab)
	}

	samples := make([]float32, 0, 3*lOut)
	samples = append(samples, r...)
	samples = append(samples, g...)
	samples = append(samples, bOut...)
	return opdata.NewLut1DData(samples, lOut, b.Interpolation, a.HalfDomain, false, a.HueAdjust, a.Dir), nil
}

func evalChannelStandalone(table []float32, halfDomain bool, interp opdata.Lut1DInterpolation, x float32) float32 {
	if halfDomain {
		return EvalHalfDomainChannel(table, x)
	}
	return Eval1DChannel(table, interp, x)
}

// halfFromBits is the inverse of HalfBits: decode a half-precision bit
// pattern back into a float32, used to walk a half-domain LUT's input
// space by index during composition.
func halfFromBits(bits uint16) float32 {
	sign := uint32(bits&0x8000) << 16
	exp := uint32(bits&0x7c00) >> 10
	mant := uint32(bits & 0x3ff)

	switch {
	case exp == 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// subnormal half -> normalize into float32
		e := int32(0)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3ff
		fexp := uint32(int32(127-15+1) + e)
		return math.Float32frombits(sign | (fexp << 23) | (mant << 13))
	case exp == 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | (mant << 13))
	default:
		fexp := exp - 15 + 127
		return math.Float32frombits(sign | (fexp << 23) | (mant << 13))
	}
}
