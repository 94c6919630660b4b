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
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// Compose3D implements Lut3D∘Lut3D composition (spec §4.3 rule 5): sample
// B at every grid point of A's output, i.e. result[r,g,b] = B(A[r,g,b]).
// The composed cube keeps A's grid size and B's interpolation mode.
func Compose3D(a, b *opdata.Lut3DData) (*opdata.Lut3DData, error) {
	n := a.GridSize
	samples := make([]float32, 3*n*n*n)
	for r := 0; r < n; r++ {
		for g := 0; g < n; g++ {
			for bl := 0; bl < n; bl++ {
				in := a.At(r, g, bl)
				out := Eval3D(b, in[0], in[1], in[2])
				idx := 3 * ((r*n+g)*n + bl)
				samples[idx+0] = out[0]
				samples[idx+1] = out[1]
				samples[idx+2] = out[2]
			}
		}
	}
	return opdata.NewLut3DData(samples, n, b.Interpolation, a.Dir), nil
}

// Compose3DWith1D implements 3D∘1D composition: applies a 1D LUT to each
// output channel of the 3D cube's samples in place of a separate op,
// folding the 1D shaper into the cube so a pipeline with a trailing 1D
// LUT can collapse to a single Lut3D op (spec §4.3's composition scope).
func Compose3DWith1D(cube *opdata.Lut3DData, shaper *opdata.Lut1DData) *opdata.Lut3DData {
	n := cube.GridSize
	samples := make([]float32, len(cube.Samples))
	copy(samples, cube.Samples)
	for i := 0; i < n*n*n; i++ {
		idx := 3 * i
		samples[idx+0] = evalChannelStandalone(shaper.R, shaper.HalfDomain, shaper.Interpolation, samples[idx+0])
		samples[idx+1] = evalChannelStandalone(shaper.G, shaper.HalfDomain, shaper.Interpolation, samples[idx+1])
		samples[idx+2] = evalChannelStandalone(shaper.B, shaper.HalfDomain, shaper.Interpolation, samples[idx+2])
	}
	return opdata.NewLut3DData(samples, n, cube.Interpolation, cube.Dir)
}
