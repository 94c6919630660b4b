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
	"math"

	"github.com/mlnoga/ocio-core/internal/ocioerr"
)

// RangeData maps [minIn, maxIn] to [minOut, maxOut] with a piecewise
// linear response; either bound may be unset (NaN), meaning "no clamp
// on that side".
type RangeData struct {
	MinIn, MaxIn   float64
	MinOut, MaxOut float64
	ClampMinIn     bool
	ClampMaxIn     bool
	Dir            Direction
}

var _ OpData = (*RangeData)(nil)

// NewRangeData builds a fully-specified range op, as accepted by
// op_list.append_range (§6).
func NewRangeData(minIn, maxIn, minOut, maxOut float64, dir Direction) *RangeData {
	return &RangeData{
		MinIn: minIn, MaxIn: maxIn,
		MinOut: minOut, MaxOut: maxOut,
		ClampMinIn: !math.IsNaN(minIn),
		ClampMaxIn: !math.IsNaN(maxIn),
		Dir:        dir,
	}
}

func (d *RangeData) Kind() Kind { return KindRange }

func (d *RangeData) Validate() error {
	if d.Dir == DirectionUnknown {
		return &ocioerr.InvalidParameter{Kind: "Range", Reason: "direction is unknown"}
	}
	if d.ClampMinIn && d.ClampMaxIn && d.MinIn > d.MaxIn {
		return &ocioerr.InvalidParameter{Kind: "Range", Reason: "minIn must be <= maxIn"}
	}
	return nil
}

func (d *RangeData) scale() float64 {
	if d.MaxIn == d.MinIn {
		return 1
	}
	return (d.MaxOut - d.MinOut) / (d.MaxIn - d.MinIn)
}

func (d *RangeData) IsIdentity() bool {
	if d.ClampMinIn != d.ClampMaxIn {
		return false
	}
	if d.ClampMinIn && d.ClampMaxIn {
		// Clamping changes every input outside [minIn, maxIn], so a clamped
		// range is not an identity for every input.
		return false
	}
	// No clamping requested on either side: identity iff in==out maps 1:1,
	// which for an unclamped range only holds when scale is 1 and offset 0.
	return !d.ClampMinIn && !d.ClampMaxIn && d.scale() == 1 && d.MinOut == d.MinIn
}

func (d *RangeData) IsNoOp() bool { return d.IsIdentity() }

func (d *RangeData) CacheID() string {
	return buildCacheID(KindRange,
		"minIn="+formatFloat(d.MinIn),
		"maxIn="+formatFloat(d.MaxIn),
		"minOut="+formatFloat(d.MinOut),
		"maxOut="+formatFloat(d.MaxOut),
		"dir="+d.Dir.String(),
	)
}

func (d *RangeData) Clone() OpData {
	c := *d
	return &c
}

// Intersect implements the "Range ∘ Range" composition rule: intersect
// the domains and compose the piecewise-linear mappings. Only valid when
// both ops clamp on both sides (the common config-authoring case); for
// partially-unclamped ranges composition is left to the caller's
// canCombineWith check, which should reject it.
func (d *RangeData) Intersect(next *RangeData) *RangeData {
	scale := d.scale()
	offset := d.MinOut - d.MinIn*scale
	nScale := next.scale()
	nOffset := next.MinOut - next.MinIn*nScale

	combinedScale := scale * nScale
	combinedOffset := offset*nScale + nOffset

	minIn, maxIn := d.MinIn, d.MaxIn
	minOut := minIn*combinedScale + combinedOffset
	maxOut := maxIn*combinedScale + combinedOffset
	return NewRangeData(minIn, maxIn, minOut, maxOut, d.Dir)
}
