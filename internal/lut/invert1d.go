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
	"sort"

	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// DefaultFastInverseLength is the default length of a forward LUT built
// to approximate an inverse at finalize time (spec §4.5).
const DefaultFastInverseLength = 4096

// Monotonize implements Algorithm LUT-MONO: walk the table and lift any
// strictly violating entry up to its predecessor so the result is
// non-decreasing (or non-increasing, mirrored). The input table is never
// mutated; a new slice is returned. Ties are preserved.
func Monotonize(table []float32, nonDecreasing bool) []float32 {
	out := append([]float32(nil), table...)
	for i := 1; i < len(out); i++ {
		if nonDecreasing {
			if out[i] < out[i-1] {
				out[i] = out[i-1]
			}
		} else {
			if out[i] > out[i-1] {
				out[i] = out[i-1]
			}
		}
	}
	return out
}

// isNonDecreasingOverall reports the table's dominant direction, used to
// pick Monotonize's target direction the way OpenColorIO infers it from
// the table's endpoints.
func isNonDecreasingOverall(table []float32) bool {
	if len(table) < 2 {
		return true
	}
	return table[len(table)-1] >= table[0]
}

// InvertChannelExact performs the "exact" inversion mode: monotonize the
// forward table (via Monotonize, which never mutates the input), then
// binary-search for y and linearly interpolate within the matching
// interval, returning a normalized index position in [0, 1].
func InvertChannelExact(forward []float32, y float32) float32 {
	n := len(forward)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return 0
	}
	nonDecreasing := isNonDecreasingOverall(forward)
	mono := Monotonize(forward, nonDecreasing)

	less := func(i int) bool {
		if nonDecreasing {
			return mono[i] < y
		}
		return mono[i] > y
	}
	// sort.Search finds the smallest index i such that !less(i), i.e.
	// the first table entry that has reached y.
	idx := sort.Search(n, func(i int) bool { return !less(i) })

	if idx <= 0 {
		return 0
	}
	if idx >= n {
		return 1
	}
	lo, hi := mono[idx-1], mono[idx]
	if lo == hi {
		// Ties preserved: the inverse at tied values returns the lower index.
		return float32(idx-1) / float32(n-1)
	}
	frac := (y - lo) / (hi - lo)
	pos := float32(idx-1) + frac
	return pos / float32(n-1)
}

// BuildFastInverse materializes a forward LUT of fastLength entries that
// approximates the inverse of forward: fastInverse[i] is the x such that
// forward(x) ≈ i/(fastLength-1). Built once at finalize time, never on
// the apply hot path (spec §5 "Memory").
func BuildFastInverse(forward []float32, fastLength int) ([]float32, error) {
	n := len(forward)
	if n < 2 {
		return nil, &ocioerr.InversionFailed{Kind: "Lut1D", Reason: "forward table too short to invert"}
	}
	out := make([]float32, fastLength)
	minV, maxV := forward[0], forward[n-1]
	nonDecreasing := isNonDecreasingOverall(forward)
	if !nonDecreasing {
		minV, maxV = maxV, minV
	}
	span := maxV - minV
	if span == 0 {
		return nil, &ocioerr.InversionFailed{Kind: "Lut1D", Reason: "forward table is constant, has no well-defined inverse"}
	}
	for i := 0; i < fastLength; i++ {
		y := float32(i) / float32(fastLength-1)
		out[i] = InvertChannelExact(forward, y)
	}
	return out, nil
}

// BuildFastInverseLut1D materializes the forward-LUT approximation of
// d's inverse as a full Lut1DData, honoring half-domain per spec §4.5
// ("half-domain LUTs build a half-domain forward inverse").
func BuildFastInverseLut1D(d *opdata.Lut1DData) (*opdata.Lut1DData, error) {
	length := DefaultFastInverseLength
	if d.HalfDomain {
		length = 65536
	}
	rOut, err := BuildFastInverse(d.R, length)
	if err != nil {
		return nil, err
	}
	gOut, err := BuildFastInverse(d.G, length)
	if err != nil {
		return nil, err
	}
	bOut, err := BuildFastInverse(d.B, length)
	if err != nil {
		return nil, err
	}
	samples := make([]float32, 0, 3*length)
	samples = append(samples, rOut...)
	samples = append(samples, gOut...)
	samples = append(samples, bOut...)
	return opdata.NewLut1DData(samples, length, opdata.Lut1DInterpLinear, d.HalfDomain, false, opdata.Lut1DHueAdjustOff, d.Dir.Inverted()), nil
}

// InvertExact evaluates the exact inverse of d at one RGB pixel: for
// each channel, find x such that forward(x) ≈ y via InvertChannelExact
// and map the returned normalized position back into [0,1] domain space
// (half-domain LUTs are never exact-inverted at apply time; they always
// use the materialized fast inverse).
func InvertExact(d *opdata.Lut1DData, in [3]float32) [3]float32 {
	return [3]float32{
		InvertChannelExact(d.R, in[0]),
		InvertChannelExact(d.G, in[1]),
		InvertChannelExact(d.B, in[2]),
	}
}
