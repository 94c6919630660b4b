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

// ExponentData is a per-channel (RGBA) power: out = in^E. In the inverse
// direction, no exponent component may be zero.
type ExponentData struct {
	E   [4]float64
	Dir Direction
}

var _ OpData = (*ExponentData)(nil)

func NewExponentData(e [4]float64, dir Direction) *ExponentData {
	return &ExponentData{E: e, Dir: dir}
}

func (d *ExponentData) Kind() Kind { return KindExponent }

func (d *ExponentData) Validate() error {
	if d.Dir == DirectionUnknown {
		return &ocioerr.InvalidParameter{Kind: "Exponent", Reason: "direction is unknown"}
	}
	if d.Dir == DirectionInverse {
		for i, e := range d.E {
			if e == 0 {
				return &ocioerr.InvalidParameter{Kind: "Exponent", Reason: "component may not be 0 in inverse direction"}
			}
			_ = i
		}
	}
	return nil
}

func (d *ExponentData) IsIdentity() bool {
	for _, e := range d.E {
		if e != 1 {
			return false
		}
	}
	return true
}

func (d *ExponentData) IsNoOp() bool { return d.IsIdentity() }

func (d *ExponentData) CacheID() string {
	return buildCacheID(KindExponent,
		"e="+formatFloats(d.E[:]),
		"dir="+d.Dir.String(),
	)
}

func (d *ExponentData) Clone() OpData {
	c := *d
	return &c
}

// Multiply implements "Exponent ∘ Exponent": component-wise multiply of
// the exponent vectors, this applied first then next: (in^a)^b = in^(ab).
func (d *ExponentData) Multiply(next *ExponentData) *ExponentData {
	var e [4]float64
	for i := range e {
		e[i] = d.E[i] * next.E[i]
	}
	return NewExponentData(e, d.Dir)
}
