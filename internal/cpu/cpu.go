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

// Package cpu renders finalized OpData into closures over RGBA float32
// pixels (C3 of the design): one PixelOp per op, built once at finalize
// time and applied on the processor's hot path with no further
// allocation or type dispatch.
package cpu

import (
	"github.com/mlnoga/ocio-core/internal/kernel"
	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// PixelOp transforms one RGBA pixel. Alpha is carried through unchanged
// by every op except Exponent and Matrix, which the source models as
// genuinely 4-component.
type PixelOp func(rgba [4]float32) [4]float32

// Options controls which rendering path Build picks for kinds that
// have more than one (e.g. power: clamped vs. fast approximate).
type Options struct {
	FastPower    bool
	SIMDAvailable bool
}

// Build renders d into a PixelOp, dispatching on (kind, style, direction)
// the way the source's per-op CPU renderer registration does, except the
// tag switch replaces virtual dispatch (spec §9 design note).
func Build(d opdata.OpData, opts Options) (PixelOp, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	switch v := d.(type) {
	case *opdata.MatrixData:
		return buildMatrix(v), nil
	case *opdata.RangeData:
		return buildRange(v), nil
	case *opdata.ExponentData:
		return buildExponent(v, opts), nil
	case *opdata.LogData:
		return buildLog(v), nil
	case *opdata.CDLData:
		return buildCDL(v), nil
	case *opdata.ExposureContrastData:
		return buildExposureContrast(v, opts), nil
	case *opdata.FixedFunctionData:
		return buildFixedFunction(v)
	case *opdata.GradingPrimaryData:
		return buildGradingPrimary(v), nil
	case *opdata.Lut1DData:
		return buildLut1D(v)
	case *opdata.Lut3DData:
		return buildLut3D(v), nil
	case *opdata.NoOpData:
		return identityOp, nil
	default:
		return nil, &ocioerr.Internal{Reason: "cpu.Build: unhandled OpData kind " + d.Kind().String()}
	}
}

func identityOp(rgba [4]float32) [4]float32 { return rgba }

// power applies the configured power mode. allowNegative selects
// PowerPassThroughNegative (NoClamp CDL styles); otherwise the clamped
// mode is used, exact or the fast bit-hack approximation per fastPower.
func power(base, exp float32, fastPower bool, allowNegative bool) float32 {
	if allowNegative {
		return kernel.PowerPassThroughNegative(base, exp)
	}
	if fastPower {
		return kernel.FastPowerClamped(base, exp)
	}
	return kernel.PowerClamped(base, exp)
}
