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

// CDLStyle selects clamped (V1.2) vs. unclamped (NoClamp) CDL rendering
// in either direction.
type CDLStyle int

const (
	CDLStyleV12Forward CDLStyle = iota
	CDLStyleV12Reverse
	CDLStyleNoClampForward
	CDLStyleNoClampReverse
)

func (s CDLStyle) IsReverse() bool {
	return s == CDLStyleV12Reverse || s == CDLStyleNoClampReverse
}

func (s CDLStyle) IsNoClamp() bool {
	return s == CDLStyleNoClampForward || s == CDLStyleNoClampReverse
}

// cdlReciprocalFloor matches OpenColorIO's CDLOpCPU.cpp RcpMinValue: the
// reverse direction's reciprocal parameters are floored at 1e-2 before
// inverting, so a slope/power/saturation of 0 cannot produce an inf/NaN
// render parameter.
const cdlReciprocalFloor = 1e-2

// CDLData is an ASC CDL: per-channel slope/offset/power plus a single
// saturation, in one of four styles.
type CDLData struct {
	Slope      [3]float64
	Offset     [3]float64
	Power      [3]float64
	Saturation float64
	Style      CDLStyle
}

var _ OpData = (*CDLData)(nil)

func NewCDLData(slope, offset, power [3]float64, saturation float64, style CDLStyle) *CDLData {
	return &CDLData{Slope: slope, Offset: offset, Power: power, Saturation: saturation, Style: style}
}

func (d *CDLData) Kind() Kind { return KindCDL }

func (d *CDLData) Validate() error {
	if !d.Style.IsNoClamp() {
		for _, p := range d.Power {
			if p < 0 {
				return &ocioerr.InvalidParameter{Kind: "CDL", Reason: "power values must be >= 0 in clamp styles"}
			}
		}
	}
	return nil
}

func (d *CDLData) IsIdentity() bool {
	for i := 0; i < 3; i++ {
		if d.Slope[i] != 1 || d.Offset[i] != 0 || d.Power[i] != 1 {
			return false
		}
	}
	return d.Saturation == 1
}

func (d *CDLData) IsNoOp() bool { return d.IsIdentity() }

func (d *CDLData) CacheID() string {
	return buildCacheID(KindCDL,
		"slope="+formatFloats(d.Slope[:]),
		"offset="+formatFloats(d.Offset[:]),
		"power="+formatFloats(d.Power[:]),
		"sat="+formatFloat(d.Saturation),
		"style="+formatFloat(float64(d.Style)),
	)
}

func (d *CDLData) Clone() OpData {
	c := *d
	return &c
}

// Direction reports the logical direction implied by the style, since
// CDL encodes direction as part of the style enum rather than a
// separate field.
func (d *CDLData) Direction() Direction {
	if d.Style.IsReverse() {
		return DirectionInverse
	}
	return DirectionForward
}

// RenderParams are the resolved, direction-folded values Algorithm CDL
// actually applies: for reverse styles these are already the
// reciprocal/negated forward parameters (see cdlReciprocalFloor). The
// renderer applies them on a separate reverse path whose steps run in
// the reverse order of the forward path.
type CDLRenderParams struct {
	Slope      [3]float32
	Offset     [3]float32
	Power      [3]float32
	Saturation float32
	NoClamp    bool
	Reverse    bool
}

func (d *CDLData) RenderParams() CDLRenderParams {
	rp := CDLRenderParams{NoClamp: d.Style.IsNoClamp(), Reverse: d.Style.IsReverse()}
	if rp.Reverse {
		for i := 0; i < 3; i++ {
			rp.Slope[i] = kernelReciprocal(d.Slope[i])
			rp.Offset[i] = float32(-d.Offset[i])
			rp.Power[i] = kernelReciprocal(d.Power[i])
		}
		rp.Saturation = kernelReciprocal(d.Saturation)
	} else {
		for i := 0; i < 3; i++ {
			rp.Slope[i] = float32(d.Slope[i])
			rp.Offset[i] = float32(d.Offset[i])
			rp.Power[i] = float32(d.Power[i])
		}
		rp.Saturation = float32(d.Saturation)
	}
	return rp
}

func kernelReciprocal(x float64) float32 {
	if x < cdlReciprocalFloor {
		x = cdlReciprocalFloor
	}
	return float32(1.0 / x)
}
