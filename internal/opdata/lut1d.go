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

import (
	"github.com/mlnoga/ocio-core/internal/ocioerr"
)

// Lut1DInterpolation selects how Lut1DData is evaluated between samples.
type Lut1DInterpolation int

const (
	Lut1DInterpLinear Lut1DInterpolation = iota
	Lut1DInterpNearest
)

// Lut1DHueAdjust selects the post-lookup hue-preservation step.
type Lut1DHueAdjust int

const (
	Lut1DHueAdjustOff Lut1DHueAdjust = iota
	Lut1DHueAdjustDW3
)

const halfDomainLength = 65536

// Lut1DData is a 1D LUT: L samples per channel (3*L floats total, R
// then G then B contiguous), optionally addressed by a half-precision
// float bit pattern instead of a linear [0,1] domain.
type Lut1DData struct {
	Length        int
	R, G, B       []float32
	HalfDomain    bool
	RawHalfs      bool
	Interpolation Lut1DInterpolation
	HueAdjust     Lut1DHueAdjust
	Dir           Direction

	// FastInverse, when non-nil, is the forward-LUT approximation of
	// this LUT's inverse, materialized at finalize time (spec §4.5).
	FastInverse *Lut1DData
}

var _ OpData = (*Lut1DData)(nil)

// NewLut1DData builds a Lut1DData from the flat, channel-planar
// sample order the §6 external interface hands over: 3 contiguous runs
// of length samples (R, then G, then B), matching §4.5/§3.
func NewLut1DData(samples []float32, length int, interp Lut1DInterpolation, halfDomain, rawHalfs bool, hueAdjust Lut1DHueAdjust, dir Direction) *Lut1DData {
	d := &Lut1DData{
		Length: length, HalfDomain: halfDomain, RawHalfs: rawHalfs,
		Interpolation: interp, HueAdjust: hueAdjust, Dir: dir,
	}
	if len(samples) >= 3*length {
		d.R = append([]float32(nil), samples[0:length]...)
		d.G = append([]float32(nil), samples[length:2*length]...)
		d.B = append([]float32(nil), samples[2*length:3*length]...)
	}
	return d
}

func (d *Lut1DData) Kind() Kind { return KindLut1D }

func (d *Lut1DData) Validate() error {
	if d.Dir == DirectionUnknown {
		return &ocioerr.InvalidParameter{Kind: "Lut1D", Reason: "direction is unknown"}
	}
	if d.HalfDomain && d.Length != halfDomainLength {
		return &ocioerr.InvalidParameter{Kind: "Lut1D", Reason: "half-domain LUT must have length 65536"}
	}
	if d.Length < 1 || d.Length > 1048576 {
		return &ocioerr.InvalidParameter{Kind: "Lut1D", Reason: "length must be in [1, 1048576]"}
	}
	if len(d.R) != d.Length || len(d.G) != d.Length || len(d.B) != d.Length {
		return &ocioerr.InvalidParameter{Kind: "Lut1D", Reason: "sample arrays must match length"}
	}
	if d.HueAdjust == Lut1DHueAdjustDW3 && d.FastInverse != nil && d.FastInverse.HueAdjust != Lut1DHueAdjustOff {
		return &ocioerr.InvalidParameter{Kind: "Lut1D", Reason: "hue adjust is not supported on a composed inverse"}
	}
	return nil
}

// IsIdentity conservatively checks that every sample equals the
// evaluation of the plain [0,1] linear ramp at its index.
func (d *Lut1DData) IsIdentity() bool {
	if d.Length < 2 || d.HalfDomain {
		return false
	}
	for i := 0; i < d.Length; i++ {
		want := float32(i) / float32(d.Length-1)
		if abs32(d.R[i]-want) > 1e-6 || abs32(d.G[i]-want) > 1e-6 || abs32(d.B[i]-want) > 1e-6 {
			return false
		}
	}
	return true
}

func (d *Lut1DData) IsNoOp() bool { return d.IsIdentity() }

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func (d *Lut1DData) CacheID() string {
	return buildCacheID(KindLut1D,
		"length="+formatFloat(float64(d.Length)),
		"half="+formatFloat(boolToFloat(d.HalfDomain)),
		"interp="+formatFloat(float64(d.Interpolation)),
		"hue="+formatFloat(float64(d.HueAdjust)),
		"dir="+d.Dir.String(),
		"samples="+hashFloat32Tables(d.R, d.G, d.B),
	)
}

func (d *Lut1DData) Clone() OpData {
	c := &Lut1DData{
		Length: d.Length, HalfDomain: d.HalfDomain, RawHalfs: d.RawHalfs,
		Interpolation: d.Interpolation, HueAdjust: d.HueAdjust, Dir: d.Dir,
		R: append([]float32(nil), d.R...),
		G: append([]float32(nil), d.G...),
		B: append([]float32(nil), d.B...),
	}
	if d.FastInverse != nil {
		c.FastInverse = d.FastInverse.Clone().(*Lut1DData)
	}
	return c
}

// Channel returns channel c (0=R,1=G,2=B) as a slice, used by the LUT
// evaluation and inversion engines (internal/lut) which operate
// per-channel.
func (d *Lut1DData) Channel(c int) []float32 {
	switch c {
	case 0:
		return d.R
	case 1:
		return d.G
	default:
		return d.B
	}
}
