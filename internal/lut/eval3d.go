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

	"github.com/mlnoga/ocio-core/internal/opdata"
)

// gridCoords maps one input channel to its integer cell index and
// fractional remainder within a GridSize-N cube.
func gridCoords(x float32, n int) (idx int, frac float32) {
	if n < 2 {
		return 0, 0
	}
	t := x * float32(n-1)
	if t < 0 {
		t = 0
	}
	maxT := float32(n - 1)
	if t > maxT {
		t = maxT
	}
	idx = int(math.Floor(float64(t)))
	if idx >= n-1 {
		idx = n - 2
	}
	frac = t - float32(idx)
	return
}

// Eval3DTrilinear evaluates a Lut3DData at (r,g,b) via standard 8-corner
// trilinear interpolation.
func Eval3DTrilinear(d *opdata.Lut3DData, r, g, b float32) [3]float32 {
	n := d.GridSize
	ri, rf := gridCoords(r, n)
	gi, gf := gridCoords(g, n)
	bi, bf := gridCoords(b, n)

	var out [3]float32
	for c := 0; c < 3; c++ {
		c000 := d.At(ri, gi, bi)[c]
		c100 := d.At(ri+1, gi, bi)[c]
		c010 := d.At(ri, gi+1, bi)[c]
		c110 := d.At(ri+1, gi+1, bi)[c]
		c001 := d.At(ri, gi, bi+1)[c]
		c101 := d.At(ri+1, gi, bi+1)[c]
		c011 := d.At(ri, gi+1, bi+1)[c]
		c111 := d.At(ri+1, gi+1, bi+1)[c]

		c00 := c000*(1-rf) + c100*rf
		c10 := c010*(1-rf) + c110*rf
		c01 := c001*(1-rf) + c101*rf
		c11 := c011*(1-rf) + c111*rf

		c0 := c00*(1-gf) + c10*gf
		c1 := c01*(1-gf) + c11*gf

		out[c] = c0*(1-bf) + c1*bf
	}
	return out
}

// Eval3DTetrahedral evaluates a Lut3DData at (r,g,b) by subdividing the
// unit cube into six tetrahedra by comparing the three fractional
// components, then blending the four relevant corners barycentrically.
// By construction this matches trilinear exactly at the 8 cube corners
// (frac in {0,1}^3 always selects corner-only weights of 0 or 1).
func Eval3DTetrahedral(d *opdata.Lut3DData, r, g, b float32) [3]float32 {
	n := d.GridSize
	ri, rf := gridCoords(r, n)
	gi, gf := gridCoords(g, n)
	bi, bf := gridCoords(b, n)

	c000 := d.At(ri, gi, bi)
	c100 := d.At(ri+1, gi, bi)
	c010 := d.At(ri, gi+1, bi)
	c110 := d.At(ri+1, gi+1, bi)
	c001 := d.At(ri, gi, bi+1)
	c101 := d.At(ri+1, gi, bi+1)
	c011 := d.At(ri, gi+1, bi+1)
	c111 := d.At(ri+1, gi+1, bi+1)

	var out [3]float32
	for c := 0; c < 3; c++ {
		v000, v100, v010, v110 := c000[c], c100[c], c010[c], c110[c]
		v001, v101, v011, v111 := c001[c], c101[c], c011[c], c111[c]

		var val float32
		if rf > gf {
			switch {
			case gf > bf:
				val = (1-rf)*v000 + (rf-gf)*v100 + (gf-bf)*v110 + bf*v111
			case rf > bf:
				val = (1-rf)*v000 + (rf-bf)*v100 + (bf-gf)*v101 + gf*v111
			default:
				val = (1-bf)*v000 + (bf-rf)*v001 + (rf-gf)*v101 + gf*v111
			}
		} else {
			switch {
			case bf > gf:
				val = (1-bf)*v000 + (bf-gf)*v001 + (gf-rf)*v011 + rf*v111
			case bf > rf:
				val = (1-gf)*v000 + (gf-bf)*v010 + (bf-rf)*v011 + rf*v111
			default:
				val = (1-gf)*v000 + (gf-rf)*v010 + (rf-bf)*v110 + bf*v111
			}
		}
		out[c] = val
	}
	return out
}

// Eval3D dispatches to the interpolation mode d requests.
func Eval3D(d *opdata.Lut3DData, r, g, b float32) [3]float32 {
	if d.Interpolation == opdata.Lut3DInterpTetrahedral {
		return Eval3DTetrahedral(d, r, g, b)
	}
	return Eval3DTrilinear(d, r, g, b)
}
