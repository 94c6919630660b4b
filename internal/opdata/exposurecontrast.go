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

package opdata

import "github.com/mlnoga/ocio-core/internal/ocioerr"

// ExposureContrastStyle selects how the pivot is interpreted: linear
// (scene-referred) or video (display-referred), matching the two styles
// OpenColorIO's ExposureContrastOp ships.
type ExposureContrastStyle int

const (
	ExposureContrastStyleLinear ExposureContrastStyle = iota
	ExposureContrastStyleVideo
)

// ExposureContrastData applies exposure (stops, as a linear multiplier
// 2^exposure), contrast (linear scale about a pivot) and a gamma term. Unlike
// GradingPrimary this has no lift/gain/brightness triple; it is the
// single-pivot building block GradingPrimary's "offset/exposure/contrast"
// style is modeled on.
type ExposureContrastData struct {
	Exposure float64
	Contrast float64
	Gamma    float64
	Pivot    float64
	Style    ExposureContrastStyle
	Dir      Direction
}

var _ OpData = (*ExposureContrastData)(nil)

func NewExposureContrastData(exposure, contrast, gamma, pivot float64, style ExposureContrastStyle, dir Direction) *ExposureContrastData {
	return &ExposureContrastData{Exposure: exposure, Contrast: contrast, Gamma: gamma, Pivot: pivot, Style: style, Dir: dir}
}

func (d *ExposureContrastData) Kind() Kind { return KindExposureContrast }

func (d *ExposureContrastData) Validate() error {
	if d.Contrast < 0.01 {
		return &ocioerr.InvalidParameter{Kind: "ExposureContrast", Reason: "contrast must be >= 0.01"}
	}
	if d.Gamma < 0.01 {
		return &ocioerr.InvalidParameter{Kind: "ExposureContrast", Reason: "gamma must be >= 0.01"}
	}
	if d.Dir == DirectionUnknown {
		return &ocioerr.InvalidParameter{Kind: "ExposureContrast", Reason: "direction is unknown"}
	}
	return nil
}

func (d *ExposureContrastData) IsIdentity() bool {
	return d.Exposure == 0 && d.Contrast == 1 && d.Gamma == 1
}

func (d *ExposureContrastData) IsNoOp() bool { return d.IsIdentity() }

func (d *ExposureContrastData) CacheID() string {
	return buildCacheID(KindExposureContrast,
		"exposure="+formatFloat(d.Exposure),
		"contrast="+formatFloat(d.Contrast),
		"gamma="+formatFloat(d.Gamma),
		"pivot="+formatFloat(d.Pivot),
		"style="+formatFloat(float64(d.Style)),
		"dir="+d.Dir.String(),
	)
}

func (d *ExposureContrastData) Clone() OpData {
	c := *d
	return &c
}
