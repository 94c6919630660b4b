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

package op

import (
	"github.com/mlnoga/ocio-core/internal/lut"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// materializeFastInverse builds the fast forward approximation of an
// inverse Lut1D/Lut3D op when flags request LUT_INV_FAST and the exact
// mode is not explicitly requested instead (spec §4.6 pass 6, §4.5).
func (o *Op) materializeFastInverse(flags OptimizationFlags) error {
	if flags.Has(FlagLutInvExact) {
		return nil
	}
	if !flags.Has(FlagLutInvFast) {
		return nil
	}
	switch d := o.data.(type) {
	case *opdata.Lut1DData:
		if d.Dir != opdata.DirectionInverse || d.FastInverse != nil {
			return nil
		}
		fi, err := lut.BuildFastInverseLut1D(d)
		if err != nil {
			return err
		}
		d.FastInverse = fi
	case *opdata.Lut3DData:
		if d.Dir != opdata.DirectionInverse || d.FastInverse != nil {
			return nil
		}
		fi, err := lut.BuildFastInverseLut3D(d, lut.DefaultFastInverseGridSize)
		if err != nil {
			return err
		}
		d.FastInverse = fi
	}
	return nil
}
