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
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mlnoga/ocio-core/internal/kernel"
	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// buildFixedFunction dispatches the two styles SPEC_FULL.md's
// supplemented-features section implements: a single-parameter
// surround-compensation power curve, and the parameterless RGB<->HSV
// pair, built on top of go-colorful's Hsv conversion the same way the
// teacher's internal/hsl.go leans on go-colorful for chroma math.
func buildFixedFunction(d *opdata.FixedFunctionData) (PixelOp, error) {
	switch d.Style {
	case opdata.FixedFunctionRec2100Surround:
		return buildRec2100Surround(d), nil
	case opdata.FixedFunctionRGBToHSV:
		if d.Dir == opdata.DirectionInverse {
			return hsvToRGB, nil
		}
		return rgbToHSV, nil
	case opdata.FixedFunctionHSVToRGB:
		if d.Dir == opdata.DirectionInverse {
			return rgbToHSV, nil
		}
		return hsvToRGB, nil
	default:
		return nil, &ocioerr.UnsupportedStyle{Kind: "FixedFunction", Style: d.Style.String()}
	}
}

func buildRec2100Surround(d *opdata.FixedFunctionData) PixelOp {
	gamma := float32(d.Params[0])
	if d.Dir == opdata.DirectionInverse {
		gamma = kernel.Reciprocal(gamma, 1e-6)
	}
	return func(rgba [4]float32) [4]float32 {
		return [4]float32{
			kernel.PowerClamped(rgba[0], gamma),
			kernel.PowerClamped(rgba[1], gamma),
			kernel.PowerClamped(rgba[2], gamma),
			rgba[3],
		}
	}
}

func rgbToHSV(rgba [4]float32) [4]float32 {
	h, s, v := colorful.Color{R: float64(rgba[0]), G: float64(rgba[1]), B: float64(rgba[2])}.Hsv()
	return [4]float32{float32(h / 360.0), float32(s), float32(v), rgba[3]}
}

func hsvToRGB(rgba [4]float32) [4]float32 {
	c := colorful.Hsv(float64(rgba[0])*360.0, float64(rgba[1]), float64(rgba[2]))
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), rgba[3]}
}
