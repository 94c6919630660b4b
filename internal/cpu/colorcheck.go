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

import colorful "github.com/lucasb-eyer/go-colorful"

// hclChroma is a debug/test cross-check independent of the Rec709 luma
// dot product the CDL and grading-primary saturation renderers use
// internally: it reports go-colorful's perceptual Hcl chroma for an RGB
// triple, which must be ~0 whenever a renderer has fully desaturated a
// pixel regardless of which luma weighting produced that result.
func hclChroma(rgb [3]float32) float64 {
	_, c, _ := (colorful.Color{R: float64(rgb[0]), G: float64(rgb[1]), B: float64(rgb[2])}).Hcl()
	return c
}
