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

package cpu

import (
	"math"

	"github.com/mlnoga/ocio-core/internal/opdata"
)

const logTiny = 1e-10

// logChannelParams is the per-channel, build-time-resolved state for one
// Log/LogAffine/LogCamera channel, so the hot path never touches the
// per-channel style switch.
type logChannelParams struct {
	base                           float64
	logSlope, logOffset            float32
	linSlope, linOffset            float32
	hasBreak                       bool
	breakPoint                     float32 // input x where the linear segment starts (camera style only)
	breakLogValue                  float32 // log-side value at the break point
	linearSlope                    float32 // slope of the linear segment below the break
}

// buildLog renders Algorithm Log forward/inverse (spec §4.4): affine
// log applies out = logSlope*log_base(max(tiny, linSlope*in+linOffset))
// + logOffset; camera style additionally substitutes a linear segment
// below the break point. Alpha passes through unchanged.
func buildLog(d *opdata.LogData) PixelOp {
	var ch [3]logChannelParams
	lnBase := math.Log(d.Base)
	for c := 0; c < 3; c++ {
		p := logChannelParams{
			base:      d.Base,
			logSlope:  float32(d.LogSlope[c]),
			logOffset: float32(d.LogOffset[c]),
			linSlope:  float32(d.LinSlope[c]),
			linOffset: float32(d.LinOffset[c]),
		}
		if d.Style == opdata.LogStyleCamera {
			p.hasBreak = true
			p.breakPoint = float32(d.LinBreak[c])
			linVal := d.LinSlope[c]*d.LinBreak[c] + d.LinOffset[c]
			if linVal < logTiny {
				linVal = logTiny
			}
			p.breakLogValue = float32(d.LogSlope[c]*math.Log(linVal)/lnBase + d.LogOffset[c])
			p.linearSlope = float32(d.EffectiveLinearSlope(c))
		}
		ch[c] = p
	}

	if d.Dir == opdata.DirectionInverse {
		return func(rgba [4]float32) [4]float32 {
			var out [4]float32
			for c := 0; c < 3; c++ {
				out[c] = logInverseChannel(ch[c], rgba[c])
			}
			out[3] = rgba[3]
			return out
		}
	}
	return func(rgba [4]float32) [4]float32 {
		var out [4]float32
		for c := 0; c < 3; c++ {
			out[c] = logForwardChannel(ch[c], rgba[c])
		}
		out[3] = rgba[3]
		return out
	}
}

func logForwardChannel(p logChannelParams, x float32) float32 {
	if p.hasBreak && x < p.breakPoint {
		return p.breakLogValue + p.linearSlope*(x-p.breakPoint)
	}
	linVal := p.linSlope*x + p.linOffset
	if linVal < logTiny {
		linVal = logTiny
	}
	return p.logSlope*float32(math.Log(float64(linVal))/math.Log(p.base)) + p.logOffset
}

func logInverseChannel(p logChannelParams, y float32) float32 {
	if p.hasBreak && y < p.breakLogValue {
		return p.breakPoint + (y-p.breakLogValue)/p.linearSlope
	}
	// y = logSlope*log_base(linVal)+logOffset  =>  linVal = base^((y-logOffset)/logSlope)
	exponent := (y - p.logOffset) / p.logSlope
	linVal := float32(math.Pow(p.base, float64(exponent)))
	return (linVal - p.linOffset) / p.linSlope
}
