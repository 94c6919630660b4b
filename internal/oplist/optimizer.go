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

package oplist

import (
	"github.com/mlnoga/ocio-core/internal/colorlog"
	"github.com/mlnoga/ocio-core/internal/lut"
	"github.com/mlnoga/ocio-core/internal/op"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// Optimize runs the optimizer passes of spec §4.6 in order, repeating
// the whole sequence until one full pass leaves the op count unchanged
// (a fixed point). Bit depth baking is not iterated: it runs once, after
// the fixed point over structural passes is reached, followed by one
// more no-op drop. LUT fast inverses are not built here; Op.Finalize
// builds them when OpList.Finalize runs.
func (l *OpList) Optimize(flags op.OptimizationFlags, logger *colorlog.Logger) error {
	for {
		before := len(l.ops)
		l.dropNoOps(flags)
		l.dropInversePairs(flags)
		if err := l.combineContiguous(flags); err != nil {
			return err
		}
		if len(l.ops) == before {
			break
		}
		logger.Logf("optimizer: %d ops remain after a pass", len(l.ops))
	}
	l.bakeBitDepths(flags)
	l.dropNoOps(flags)
	return nil
}

// dropNoOps removes every op that is a structural no-op, when
// FlagIdentity is set (spec §4.6 pass 1).
func (l *OpList) dropNoOps(flags op.OptimizationFlags) {
	if !flags.Has(op.FlagIdentity) {
		return
	}
	kept := l.ops[:0]
	for _, o := range l.ops {
		if o.IsNoOp() {
			continue
		}
		kept = append(kept, o)
	}
	l.ops = kept
}

// dropInversePairs removes adjacent ops that exactly invert each other
// (spec §4.6 pass 2, §4.3 rule 7). Runs whenever FlagIdentity is set:
// an inverse pair composes to identity, the same condition FlagIdentity
// otherwise governs.
func (l *OpList) dropInversePairs(flags op.OptimizationFlags) {
	if !flags.Has(op.FlagIdentity) {
		return
	}
	for {
		removed := false
		for i := 0; i+1 < len(l.ops); i++ {
			if l.ops[i].IsInverse(l.ops[i+1]) {
				l.ops = append(l.ops[:i], l.ops[i+2:]...)
				removed = true
				break
			}
		}
		if !removed {
			return
		}
	}
}

// combineContiguous fuses adjacent compatible ops, gated per kind by
// the flag governing that fusion (spec §4.6 pass 3, §4.3). Matrix
// fusion requires FlagMatrixFusion; LUT composition requires
// FlagLutComposeSmall or FlagLutComposeBig (the latter selecting the
// wider fast-inverse-friendly output length for 1D compose); Range and
// Exponent fusion are unconditional, since neither changes LUT
// structure or matrix commutation order.
func (l *OpList) combineContiguous(flags op.OptimizationFlags) error {
	resample := lut.ComposeResampleSmall
	if flags.Has(op.FlagLutComposeBig) {
		resample = lut.ComposeResampleBig
	}
	for i := 0; i+1 < len(l.ops); {
		a, b := l.ops[i], l.ops[i+1]
		if !a.CanCombineWith(b) || !fusionEnabled(a.Kind(), b.Kind(), flags) {
			i++
			continue
		}
		replacement, err := a.CombineWith(b, resample)
		if err != nil {
			return err
		}
		merged := make([]*op.Op, 0, len(l.ops)-2+len(replacement))
		merged = append(merged, l.ops[:i]...)
		merged = append(merged, replacement...)
		merged = append(merged, l.ops[i+2:]...)
		l.ops = merged
	}
	return nil
}

func fusionEnabled(a, b opdata.Kind, flags op.OptimizationFlags) bool {
	switch {
	case a == opdata.KindMatrix && b == opdata.KindMatrix:
		return flags.Has(op.FlagMatrixFusion)
	case a == opdata.KindLut1D || b == opdata.KindLut1D || a == opdata.KindLut3D || b == opdata.KindLut3D:
		return flags.Has(op.FlagLutComposeSmall) || flags.Has(op.FlagLutComposeBig)
	default:
		return true
	}
}

// bakeBitDepths appends an explicit Range op at the front and/or back of
// the list whenever InputBitDepth/OutputBitDepth request integer
// normalization, so every renderer downstream always operates in the
// normalized [0,1] float domain regardless of the list's declared I/O
// bit depth. A simplification relative to fusing the scale directly
// into the first/last op's own kernel: correct and simple, at the cost
// of one extra Range op per non-F32 boundary when the neighbor op could
// have absorbed the scale for free.
func (l *OpList) bakeBitDepths(flags op.OptimizationFlags) {
	if l.InputBitDepth != opdata.BitDepthF32 {
		maxVal := l.InputBitDepth.MaxValue()
		in := op.New(opdata.NewRangeData(0, maxVal, 0, 1, opdata.DirectionForward))
		l.ops = append([]*op.Op{in}, l.ops...)
	}
	if l.OutputBitDepth != opdata.BitDepthF32 {
		maxVal := l.OutputBitDepth.MaxValue()
		out := op.New(opdata.NewRangeData(0, 1, 0, maxVal, opdata.DirectionForward))
		l.ops = append(l.ops, out)
	}
}
