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

// Lut3DInterpolation selects trilinear vs. tetrahedral evaluation.
type Lut3DInterpolation int

const (
	Lut3DInterpTrilinear Lut3DInterpolation = iota
	Lut3DInterpTetrahedral
)

// Lut3DData is an NxNxN RGB cube, samples stored red-slow/blue-fast:
// Samples[3*((r*N+g)*N+b)+c].
type Lut3DData struct {
	GridSize      int
	Samples       []float32
	Interpolation Lut3DInterpolation
	Dir           Direction

	FastInverse *Lut3DData
}

var _ OpData = (*Lut3DData)(nil)

func NewLut3DData(samples []float32, gridSize int, interp Lut3DInterpolation, dir Direction) *Lut3DData {
	return &Lut3DData{
		GridSize: gridSize, Samples: append([]float32(nil), samples...),
		Interpolation: interp, Dir: dir,
	}
}

func (d *Lut3DData) Kind() Kind { return KindLut3D }

func (d *Lut3DData) Validate() error {
	if d.Dir == DirectionUnknown {
		return &ocioerr.InvalidParameter{Kind: "Lut3D", Reason: "direction is unknown"}
	}
	if d.GridSize < 2 || d.GridSize > 129 {
		return &ocioerr.InvalidParameter{Kind: "Lut3D", Reason: "grid size must be in [2, 129]"}
	}
	want := 3 * d.GridSize * d.GridSize * d.GridSize
	if len(d.Samples) != want {
		return &ocioerr.InvalidParameter{Kind: "Lut3D", Reason: "sample count does not match grid size"}
	}
	return nil
}

func (d *Lut3DData) IsIdentity() bool {
	n := d.GridSize
	for r := 0; r < n; r++ {
		for g := 0; g < n; g++ {
			for b := 0; b < n; b++ {
				idx := 3 * ((r*n+g)*n + b)
				wantR := float32(r) / float32(n-1)
				wantG := float32(g) / float32(n-1)
				wantB := float32(b) / float32(n-1)
				if abs32(d.Samples[idx]-wantR) > 1e-6 || abs32(d.Samples[idx+1]-wantG) > 1e-6 || abs32(d.Samples[idx+2]-wantB) > 1e-6 {
					return false
				}
			}
		}
	}
	return true
}

func (d *Lut3DData) IsNoOp() bool { return d.IsIdentity() }

func (d *Lut3DData) CacheID() string {
	return buildCacheID(KindLut3D,
		"grid="+formatFloat(float64(d.GridSize)),
		"interp="+formatFloat(float64(d.Interpolation)),
		"dir="+d.Dir.String(),
		"samples="+hashFloat32Tables(d.Samples),
	)
}

func (d *Lut3DData) Clone() OpData {
	c := &Lut3DData{
		GridSize: d.GridSize, Samples: append([]float32(nil), d.Samples...),
		Interpolation: d.Interpolation, Dir: d.Dir,
	}
	if d.FastInverse != nil {
		c.FastInverse = d.FastInverse.Clone().(*Lut3DData)
	}
	return c
}

// At returns the stored RGB triple at grid index (r,g,b).
func (d *Lut3DData) At(r, g, b int) [3]float32 {
	n := d.GridSize
	idx := 3 * ((r*n+g)*n + b)
	return [3]float32{d.Samples[idx], d.Samples[idx+1], d.Samples[idx+2]}
}
