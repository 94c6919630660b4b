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

// GradingPrimaryStyle selects which artist-facing triplet feeds the
// pre-compute step of Algorithm Grading: {brightness,contrast,gamma} for
// log-style grading, {offset,exposure,contrast} for linear, or
// {lift,gain,gamma} for video.
type GradingPrimaryStyle int

const (
	GradingPrimaryStyleLog GradingPrimaryStyle = iota
	GradingPrimaryStyleLinear
	GradingPrimaryStyleVideo
)

// GradingRGBM is a per-channel triple plus a master value, the shape
// every GradingPrimary parameter group takes (brightness/contrast/gamma,
// offset/exposure/contrast, or lift/gain/gamma).
type GradingRGBM struct {
	Master float64
	R, G, B float64
}

func (t GradingRGBM) perChannel() [3]float64 {
	return [3]float64{t.Master + t.R, t.Master + t.G, t.Master + t.B}
}

// GradingPrimaryData is the grading-primary transform: one GradingRGBM
// triple whose meaning depends on Style, plus Pivot, clamp bounds and
// black/white pivots.
type GradingPrimaryData struct {
	Style GradingPrimaryStyle

	// Log style.
	Brightness GradingRGBM
	Contrast   GradingRGBM
	Gamma      GradingRGBM

	// Linear style.
	Offset   GradingRGBM
	Exposure GradingRGBM
	// Contrast reused for linear's contrast triple.

	// Video style.
	Lift GradingRGBM
	Gain GradingRGBM
	// Gamma reused for video's gamma triple.

	Pivot       float64
	PivotBlack  float64
	PivotWhite  float64
	ClampBlack  float64
	ClampWhite  float64
	ClampEnabled bool
	Dir         Direction
}

var _ OpData = (*GradingPrimaryData)(nil)

func (d *GradingPrimaryData) Kind() Kind { return KindGradingPrimary }

func (d *GradingPrimaryData) Validate() error {
	if d.Dir == DirectionUnknown {
		return &ocioerr.InvalidParameter{Kind: "GradingPrimary", Reason: "direction is unknown"}
	}
	if d.PivotWhite <= d.PivotBlack {
		return &ocioerr.InvalidParameter{Kind: "GradingPrimary", Reason: "pivotWhite must be > pivotBlack"}
	}
	if d.ClampEnabled && d.ClampBlack > d.ClampWhite {
		return &ocioerr.InvalidParameter{Kind: "GradingPrimary", Reason: "clampBlack must be <= clampWhite"}
	}
	gammaTriple := d.Gamma
	contrastTriple := d.Contrast
	switch d.Style {
	case GradingPrimaryStyleLog:
		// gamma >= 0.01 (non-linear style).
		for _, v := range gammaTriple.perChannel() {
			if v < 0.01 {
				return &ocioerr.InvalidParameter{Kind: "GradingPrimary", Reason: "gamma must be >= 0.01"}
			}
		}
	case GradingPrimaryStyleLinear:
		// contrast >= 0.01 for linear style.
		for _, v := range contrastTriple.perChannel() {
			if v < 0.01 {
				return &ocioerr.InvalidParameter{Kind: "GradingPrimary", Reason: "contrast must be >= 0.01 for linear style"}
			}
		}
	case GradingPrimaryStyleVideo:
		for _, v := range d.Gamma.perChannel() {
			if v < 0.01 {
				return &ocioerr.InvalidParameter{Kind: "GradingPrimary", Reason: "gamma must be >= 0.01"}
			}
		}
	}
	return nil
}

// IsIdentity conservatively reports whether all four parameter groups
// relevant to this style are identity and clamp covers the full range
// (matching Algorithm Grading's documented bypass condition).
func (d *GradingPrimaryData) IsIdentity() bool {
	fullRangeClamp := !d.ClampEnabled
	switch d.Style {
	case GradingPrimaryStyleLog:
		return isZeroRGBM(d.Brightness) && isOneRGBM(d.Contrast) && isOneRGBM(d.Gamma) && fullRangeClamp
	case GradingPrimaryStyleLinear:
		return isZeroRGBM(d.Offset) && isZeroRGBM(d.Exposure) && isOneRGBM(d.Contrast) && fullRangeClamp
	case GradingPrimaryStyleVideo:
		return isZeroRGBM(d.Lift) && isOneRGBM(d.Gain) && isOneRGBM(d.Gamma) && fullRangeClamp
	default:
		return false
	}
}

func (d *GradingPrimaryData) IsNoOp() bool { return d.IsIdentity() }

func isZeroRGBM(t GradingRGBM) bool { return t.Master == 0 && t.R == 0 && t.G == 0 && t.B == 0 }
func isOneRGBM(t GradingRGBM) bool  { return t.Master == 1 && t.R == 1 && t.G == 1 && t.B == 1 }

func (d *GradingPrimaryData) CacheID() string {
	flat := func(t GradingRGBM) string {
		return formatFloats([]float64{t.Master, t.R, t.G, t.B})
	}
	return buildCacheID(KindGradingPrimary,
		"style="+formatFloat(float64(d.Style)),
		"brightness="+flat(d.Brightness),
		"contrast="+flat(d.Contrast),
		"gamma="+flat(d.Gamma),
		"offset="+flat(d.Offset),
		"exposure="+flat(d.Exposure),
		"lift="+flat(d.Lift),
		"gain="+flat(d.Gain),
		"pivot="+formatFloat(d.Pivot),
		"pivotBlack="+formatFloat(d.PivotBlack),
		"pivotWhite="+formatFloat(d.PivotWhite),
		"clampBlack="+formatFloat(d.ClampBlack),
		"clampWhite="+formatFloat(d.ClampWhite),
		"clampEnabled="+formatFloat(boolToFloat(d.ClampEnabled)),
		"dir="+d.Dir.String(),
	)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (d *GradingPrimaryData) Clone() OpData {
	c := *d
	return &c
}

// PreRendered is the small struct of per-channel floats Algorithm
// Grading pre-computes once from the artist-facing parameters, per
// spec §4.4.
type PreRendered struct {
	B     [3]float64 // brightness/offset/lift, remapped
	C     [3]float64 // contrast
	G     [3]float64 // reciprocal gamma
	Pivot float64
}

// PreRender computes PreRendered for the forward direction. Inverse
// rendering negates/reciprocates these (see Invert).
func (d *GradingPrimaryData) PreRender() PreRendered {
	var pr PreRendered
	switch d.Style {
	case GradingPrimaryStyleLog:
		b := d.Brightness.perChannel()
		c := d.Contrast.perChannel()
		g := d.Gamma.perChannel()
		for i := 0; i < 3; i++ {
			pr.B[i] = b[i] * 6.25 / 1023.0
			pr.C[i] = c[i]
			pr.G[i] = 1.0 / g[i]
		}
		pr.Pivot = 0.5 + d.Pivot*0.5
	case GradingPrimaryStyleLinear:
		off := d.Offset.perChannel()
		exp := d.Exposure.perChannel()
		con := d.Contrast.perChannel()
		for i := 0; i < 3; i++ {
			// Exposure acts as a power-of-two scale folded into contrast's
			// multiplicative pre-stage; offset is additive brightness.
			pr.B[i] = off[i]
			pr.C[i] = con[i] * math.Exp2(exp[i])
			pr.G[i] = 1.0
		}
		pr.Pivot = 0.18 * math.Exp2(d.Pivot)
	case GradingPrimaryStyleVideo:
		lift := d.Lift.perChannel()
		gain := d.Gain.perChannel()
		gamma := d.Gamma.perChannel()
		for i := 0; i < 3; i++ {
			pr.B[i] = lift[i]
			pr.C[i] = gain[i]
			pr.G[i] = 1.0 / gamma[i]
		}
		pr.Pivot = 0.5 + d.Pivot*0.5
	}
	return pr
}

// Invert returns the PreRendered values for the inverse direction: it
// negates/reciprocates the pre-rendered triple. The inverse renderer
// applies these in the reverse stage order (power, scale-around-pivot,
// add).
func (pr PreRendered) Invert() PreRendered {
	var out PreRendered
	out.Pivot = pr.Pivot
	for i := 0; i < 3; i++ {
		out.C[i] = 1.0 / pr.C[i]
		out.G[i] = 1.0 / pr.G[i]
		out.B[i] = -pr.B[i]
	}
	return out
}
