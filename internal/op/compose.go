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

package op

import (
	"github.com/mlnoga/ocio-core/internal/lut"
	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"github.com/mlnoga/ocio-core/internal/opdata"
	"gonum.org/v1/gonum/mat"
)

// IsSameType reports whether o and other share the same kind tag, style
// differences ignored (spec §4.3).
func (o *Op) IsSameType(other *Op) bool {
	return o.Kind() == other.Kind()
}

// IsInverse reports whether o and other are the same kind with
// parameters that are exact inverses of each other under that kind's
// inversion rule: opposite direction and identical parameters
// otherwise (spec §4.3 rule 7).
func (o *Op) IsInverse(other *Op) bool {
	if o.Kind() != other.Kind() {
		return false
	}
	da, db := o.Direction(), other.Direction()
	if da == opdata.DirectionUnknown || db == opdata.DirectionUnknown {
		return false
	}
	if da != db.Inverted() {
		return false
	}
	switch a := o.data.(type) {
	case *opdata.MatrixData:
		b := other.data.(*opdata.MatrixData)
		return matrixEqual(a.M, b.M) && a.B == b.B
	case *opdata.RangeData:
		b := other.data.(*opdata.RangeData)
		return a.MinIn == b.MinIn && a.MaxIn == b.MaxIn && a.MinOut == b.MinOut && a.MaxOut == b.MaxOut
	case *opdata.ExponentData:
		b := other.data.(*opdata.ExponentData)
		return a.E == b.E
	case *opdata.LogData:
		b := other.data.(*opdata.LogData)
		return a.Base == b.Base && a.Style == b.Style && a.LogSlope == b.LogSlope &&
			a.LogOffset == b.LogOffset && a.LinSlope == b.LinSlope && a.LinOffset == b.LinOffset
	case *opdata.ExposureContrastData:
		b := other.data.(*opdata.ExposureContrastData)
		return a.Exposure == b.Exposure && a.Contrast == b.Contrast && a.Gamma == b.Gamma &&
			a.Pivot == b.Pivot && a.Style == b.Style
	case *opdata.CDLData:
		b := other.data.(*opdata.CDLData)
		return a.Slope == b.Slope && a.Offset == b.Offset && a.Power == b.Power && a.Saturation == b.Saturation
	case *opdata.Lut1DData:
		b := other.data.(*opdata.Lut1DData)
		return a.Length == b.Length && sameFloat32Slice(a.R, b.R) && sameFloat32Slice(a.G, b.G) && sameFloat32Slice(a.B, b.B)
	case *opdata.Lut3DData:
		b := other.data.(*opdata.Lut3DData)
		return a.GridSize == b.GridSize && sameFloat32Slice(a.Samples, b.Samples)
	case *opdata.GradingPrimaryData:
		b := other.data.(*opdata.GradingPrimaryData)
		return sameGradingParams(a, b)
	default:
		return false
	}
}

func matrixEqual(a, b *mat.Dense) bool {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb || ca != cb {
		return false
	}
	for r := 0; r < ra; r++ {
		for c := 0; c < ca; c++ {
			if a.At(r, c) != b.At(r, c) {
				return false
			}
		}
	}
	return true
}

func sameFloat32Slice(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameGradingParams(a, b *opdata.GradingPrimaryData) bool {
	return a.Style == b.Style && a.Brightness == b.Brightness && a.Contrast == b.Contrast &&
		a.Gamma == b.Gamma && a.Offset == b.Offset && a.Exposure == b.Exposure &&
		a.Lift == b.Lift && a.Gain == b.Gain && a.Pivot == b.Pivot &&
		a.PivotBlack == b.PivotBlack && a.PivotWhite == b.PivotWhite &&
		a.ClampBlack == b.ClampBlack && a.ClampWhite == b.ClampWhite && a.ClampEnabled == b.ClampEnabled
}

// CanCombineWith reports whether o and next (o applied first) may be
// fused into one or more replacement ops by CombineWith, per the
// composition rules of spec §4.3.
func (o *Op) CanCombineWith(next *Op) bool {
	if o.Kind() == opdata.KindLut3D && next.Kind() == opdata.KindLut1D {
		return true
	}
	if o.Kind() != next.Kind() {
		return false
	}
	switch o.Kind() {
	case opdata.KindMatrix, opdata.KindExponent, opdata.KindRange, opdata.KindLut1D, opdata.KindLut3D:
		return true
	default:
		return false
	}
}

// CombineWith fuses o and next (o applied first) into a replacement
// sub-pipeline, per kind. Must only be called when CanCombineWith(next)
// is true. resample selects 1D LUT composition's output-length policy
// (spec §4.5 COMPOSE_RESAMPLE_BIG).
func (o *Op) CombineWith(next *Op, resample lut.ComposeResample) ([]*Op, error) {
	if o.Kind() == opdata.KindLut3D && next.Kind() == opdata.KindLut1D {
		cube := o.data.(*opdata.Lut3DData)
		shaper := next.data.(*opdata.Lut1DData)
		return []*Op{New(lut.Compose3DWith1D(cube, shaper))}, nil
	}
	if o.Kind() != next.Kind() {
		return nil, &ocioerr.UnsupportedCompose{AKind: o.Kind().String(), BKind: next.Kind().String()}
	}
	switch a := o.data.(type) {
	case *opdata.MatrixData:
		b := next.data.(*opdata.MatrixData)
		fa := effectiveMatrix(a)
		fb := effectiveMatrix(b)
		return []*Op{New(fa.Multiply(fb))}, nil
	case *opdata.ExponentData:
		b := next.data.(*opdata.ExponentData)
		fa := effectiveExponent(a)
		fb := effectiveExponent(b)
		return []*Op{New(fa.Multiply(fb))}, nil
	case *opdata.RangeData:
		b := next.data.(*opdata.RangeData)
		return []*Op{New(a.Intersect(b))}, nil
	case *opdata.Lut1DData:
		b := next.data.(*opdata.Lut1DData)
		composed, err := lut.Compose1D(a, b, resample)
		if err != nil {
			return nil, err
		}
		return []*Op{New(composed)}, nil
	case *opdata.Lut3DData:
		b := next.data.(*opdata.Lut3DData)
		composed, err := lut.Compose3D(a, b)
		if err != nil {
			return nil, err
		}
		return []*Op{New(composed)}, nil
	default:
		return nil, &ocioerr.UnsupportedCompose{AKind: o.Kind().String(), BKind: next.Kind().String()}
	}
}

// effectiveMatrix resolves d to the forward-applying matrix
// (out=M*in+b): an Inverse-direction matrix is rendered by inverting M
// once when its renderer is built, so composing two matrices requires resolving both to
// their effective forward form first.
func effectiveMatrix(d *opdata.MatrixData) *opdata.MatrixData {
	if d.Dir == opdata.DirectionForward {
		return d
	}
	var inv mat.Dense
	if err := inv.Inverse(d.M); err != nil {
		return d
	}
	bVec := mat.NewVecDense(4, d.B[:])
	var nb mat.VecDense
	nb.MulVec(&inv, bVec)
	var b [4]float64
	for i := 0; i < 4; i++ {
		b[i] = -nb.AtVec(i)
	}
	return &opdata.MatrixData{M: &inv, B: b, Dir: opdata.DirectionForward}
}

// effectiveExponent resolves d to the forward-applying exponent vector:
// an Inverse-direction exponent renders as pow(x, 1/E).
func effectiveExponent(d *opdata.ExponentData) *opdata.ExponentData {
	if d.Dir == opdata.DirectionForward {
		return d
	}
	var e [4]float64
	for i, v := range d.E {
		e[i] = 1.0 / v
	}
	return opdata.NewExponentData(e, opdata.DirectionForward)
}
