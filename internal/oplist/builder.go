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

package oplist

import (
	"github.com/mlnoga/ocio-core/internal/op"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// The Append* methods below are the §6 "OpList builder (consumed by
// loaders)" external interface: each constructs the corresponding
// OpData, wraps it in an Op and appends it, returning a validation
// error (and leaving the list unchanged) on bad parameters.

func (l *OpList) AppendMatrix(m [16]float64, b [4]float64, dir opdata.Direction) error {
	return l.Append(op.New(opdata.NewMatrixData(m, b, dir)))
}

func (l *OpList) AppendRange(minIn, maxIn, minOut, maxOut float64, dir opdata.Direction) error {
	return l.Append(op.New(opdata.NewRangeData(minIn, maxIn, minOut, maxOut, dir)))
}

func (l *OpList) AppendExponent(e [4]float64, dir opdata.Direction) error {
	return l.Append(op.New(opdata.NewExponentData(e, dir)))
}

func (l *OpList) AppendLog(base, logSlope, logOffset, linSlope, linOffset float64, dir opdata.Direction) error {
	return l.Append(op.New(opdata.NewLogAffineData(base, logSlope, logOffset, linSlope, linOffset, dir)))
}

func (l *OpList) AppendCDL(slope, offset, power [3]float64, saturation float64, style opdata.CDLStyle) error {
	return l.Append(op.New(opdata.NewCDLData(slope, offset, power, saturation, style)))
}

func (l *OpList) AppendLut1D(samples []float32, length int, interp opdata.Lut1DInterpolation, halfDomain, rawHalfs bool, hueAdjust opdata.Lut1DHueAdjust, dir opdata.Direction) error {
	return l.Append(op.New(opdata.NewLut1DData(samples, length, interp, halfDomain, rawHalfs, hueAdjust, dir)))
}

func (l *OpList) AppendLut3D(samples []float32, gridSize int, interp opdata.Lut3DInterpolation, dir opdata.Direction) error {
	return l.Append(op.New(opdata.NewLut3DData(samples, gridSize, interp, dir)))
}

func (l *OpList) AppendGradingPrimary(params *opdata.GradingPrimaryData) error {
	return l.Append(op.New(params))
}

func (l *OpList) AppendFixedFunction(style opdata.FixedFunctionStyle, params []float64, dir opdata.Direction) error {
	return l.Append(op.New(opdata.NewFixedFunctionData(style, params, dir)))
}

func (l *OpList) AppendExposureContrast(exposure, contrast, gamma, pivot float64, style opdata.ExposureContrastStyle, dir opdata.Direction) error {
	return l.Append(op.New(opdata.NewExposureContrastData(exposure, contrast, gamma, pivot, style, dir)))
}

func (l *OpList) AppendNoOp(kind opdata.Kind, description string) error {
	return l.Append(op.New(opdata.NewNoOpData(kind, description)))
}
