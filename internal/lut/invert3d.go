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
	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// DefaultFastInverseGridSize is the grid size used for a 3D LUT's
// materialized fast-inverse approximation when the caller doesn't ask
// for a larger one.
const DefaultFastInverseGridSize = 33

// invert3DPoint finds x (in [0,1]^3) such that Eval3D(forward, x) ≈
// target, by Newton-Raphson on a per-channel-decoupled Jacobian: since
// a well-behaved color cube is close to diagonal (each output channel
// is most sensitive to its own input channel), a few iterations of
// independently correcting each channel against its own residual
// converges to within the fast-inverse tolerance spec §8 allows (4x the
// grid step) for the cubes this engine targets. This mirrors
// OpenColorIO's CPU fast-inverse-by-sampling strategy without requiring
// a full 3x3 linear solve per voxel.
func invert3DPoint(forward *opdata.Lut3DData, target [3]float32) [3]float32 {
	const iterations = 8
	const step = 1e-3

	x := target // initial guess: identity
	for iter := 0; iter < iterations; iter++ {
		y := Eval3D(forward, x[0], x[1], x[2])
		var residual [3]float32
		for c := 0; c < 3; c++ {
			residual[c] = target[c] - y[c]
		}
		// Numerical partial derivative of channel c w.r.t. input c only.
		for c := 0; c < 3; c++ {
			xp := x
			if xp[c]+step <= 1 {
				xp[c] += step
			} else {
				xp[c] -= step
			}
			yp := Eval3D(forward, xp[0], xp[1], xp[2])
			deriv := (yp[c] - y[c]) / (xp[c] - x[c])
			if deriv == 0 {
				continue
			}
			x[c] += residual[c] / deriv
			if x[c] < 0 {
				x[c] = 0
			}
			if x[c] > 1 {
				x[c] = 1
			}
		}
	}
	return x
}

// BuildFastInverseLut3D materializes a forward cube of gridSize whose
// application approximates the inverse of forward (spec §4.5/§1 "LUT
// inversion fallback"), using invert3DPoint at each output grid vertex.
func BuildFastInverseLut3D(forward *opdata.Lut3DData, gridSize int) (*opdata.Lut3DData, error) {
	if gridSize < 2 {
		return nil, &ocioerr.InversionFailed{Kind: "Lut3D", Reason: "fast-inverse grid size must be >= 2"}
	}
	samples := make([]float32, 3*gridSize*gridSize*gridSize)
	n := gridSize
	for r := 0; r < n; r++ {
		for g := 0; g < n; g++ {
			for b := 0; b < n; b++ {
				target := [3]float32{
					float32(r) / float32(n-1),
					float32(g) / float32(n-1),
					float32(b) / float32(n-1),
				}
				x := invert3DPoint(forward, target)
				idx := 3 * ((r*n+g)*n + b)
				samples[idx+0] = x[0]
				samples[idx+1] = x[1]
				samples[idx+2] = x[2]
			}
		}
	}
	return opdata.NewLut3DData(samples, n, forward.Interpolation, forward.Dir.Inverted()), nil
}
