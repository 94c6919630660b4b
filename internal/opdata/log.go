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

// LogStyle distinguishes the three log flavors the spec names: plain
// Log (fixed base, no affine pre/post), LogAffine (per-channel
// slope/offset on both the log and linear sides) and LogCamera (affine
// plus a linear segment below a break point, e.g. Cineon/ARRI LogC
// style camera curves).
type LogStyle int

const (
	LogStylePlain LogStyle = iota
	LogStyleAffine
	LogStyleCamera
)

// logTiny is the epsilon floor applied before taking a logarithm,
// matching spec §4.4's "ε = tiny = 1e-10".
const logTiny = 1e-10

// LogData covers Log, LogAffine and LogCamera. Per-channel parameters
// are always populated (Style==Plain just uses the same slope/offset
// for every channel with LinSlope=1, LinOffset=0).
type LogData struct {
	Base       float64
	Style      LogStyle
	LogSlope   [3]float64
	LogOffset  [3]float64
	LinSlope   [3]float64
	LinOffset  [3]float64
	// LogCamera-only fields.
	LinBreak     [3]float64
	LinearSlope  [3]float64
	LinearSlopeSet [3]bool // true where the caller supplied an explicit LinearSlope instead of deriving it for C1 continuity
	Dir          Direction
}

var _ OpData = (*LogData)(nil)

// NewLogAffineData builds a LogAffine op from the external interface's
// scalar parameters (§6 append_log), broadcasting them across channels.
func NewLogAffineData(base, logSlope, logOffset, linSlope, linOffset float64, dir Direction) *LogData {
	d := &LogData{Base: base, Style: LogStyleAffine, Dir: dir}
	for c := 0; c < 3; c++ {
		d.LogSlope[c] = logSlope
		d.LogOffset[c] = logOffset
		d.LinSlope[c] = linSlope
		d.LinOffset[c] = linOffset
	}
	return d
}

func (d *LogData) Kind() Kind { return KindLog }

func (d *LogData) Validate() error {
	if d.Dir == DirectionUnknown {
		return &ocioerr.InvalidParameter{Kind: "Log", Reason: "direction is unknown"}
	}
	if d.Base <= 1 {
		return &ocioerr.InvalidParameter{Kind: "Log", Reason: "base must be in (1, inf)"}
	}
	if d.Style == LogStyleCamera {
		for c := 0; c < 3; c++ {
			if d.LinSlope[c] == 0 {
				return &ocioerr.InvalidParameter{Kind: "Log", Reason: "linSlope must be nonzero for camera style"}
			}
		}
	}
	return nil
}

func (d *LogData) IsIdentity() bool { return false }

func (d *LogData) IsNoOp() bool { return false }

func (d *LogData) CacheID() string {
	return buildCacheID(KindLog,
		"base="+formatFloat(d.Base),
		"style="+formatFloat(float64(d.Style)),
		"logSlope="+formatFloats(d.LogSlope[:]),
		"logOffset="+formatFloats(d.LogOffset[:]),
		"linSlope="+formatFloats(d.LinSlope[:]),
		"linOffset="+formatFloats(d.LinOffset[:]),
		"linBreak="+formatFloats(d.LinBreak[:]),
		"linearSlope="+formatFloats(d.LinearSlope[:]),
		"dir="+d.Dir.String(),
	)
}

func (d *LogData) Clone() OpData {
	c := *d
	return &c
}

// EffectiveLinearSlope returns the linear-side slope below the break
// point for channel c: the caller-specified LinearSlope if set, else the
// value that makes the curve C¹-continuous at the break (spec §9 open
// question — both modes are supported, the derived one is the default).
func (d *LogData) EffectiveLinearSlope(c int) float64 {
	if d.LinearSlopeSet[c] {
		return d.LinearSlope[c]
	}
	// d/dx [ logSlope * log_base(linSlope*x + linOffset) + logOffset ]
	//   = logSlope * linSlope / ((linSlope*x + linOffset) * ln(base))
	x := d.LinBreak[c]
	denom := (d.LinSlope[c]*x + d.LinOffset[c]) * math.Log(d.Base)
	if denom == 0 {
		return 1
	}
	return d.LogSlope[c] * d.LinSlope[c] / denom
}
