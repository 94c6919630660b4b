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

// Package op wraps a single opdata.OpData with the thin polymorphic
// adapter spec §4.3/C5 requires: direction, type/inverse equality
// checks, a composition predicate and combiner, channel-crosstalk
// metadata for the optimizer's legality guard, and selection of a CPU
// renderer. Ops are created when an OpData is appended to a list and
// finalized exactly once before first apply, mirroring the teacher's
// OperatorUnary/OperatorSource adapter shapes in internal/operator.go,
// reworked as a single Go interface instead of method-pointer swapping.
package op

import (
	"github.com/mlnoga/ocio-core/internal/cpu"
	"github.com/mlnoga/ocio-core/internal/kernel"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// OptimizationFlags is the optimizer/finalize bit-set spec §4.6 defines.
type OptimizationFlags uint32

const FlagNone OptimizationFlags = 0

const (
	FlagIdentity OptimizationFlags = 1 << iota
	FlagMatrixFusion
	FlagLutComposeSmall
	FlagLutComposeBig
	FlagLutInvFast
	FlagLutInvExact
)

// FlagDefault matches spec §4.6: IDENTITY | MATRIX_FUSION |
// LUT_COMPOSE_SMALL | LUT_INV_FAST.
const FlagDefault = FlagIdentity | FlagMatrixFusion | FlagLutComposeSmall | FlagLutInvFast

func (f OptimizationFlags) Has(bit OptimizationFlags) bool { return f&bit != 0 }

// Op is the thin adapter wrapping one OpData (C5 of the design). The
// zero value is not usable; construct with New.
type Op struct {
	data      opdata.OpData
	cacheID   string
	finalized bool
}

// New wraps data, the sole owner of which becomes this Op (spec §3
// "Ownership").
func New(data opdata.OpData) *Op {
	return &Op{data: data}
}

// Data returns the wrapped OpData, a non-owning reference for read-only
// consumers such as the optimizer comparing neighbors (spec §3).
func (o *Op) Data() opdata.OpData { return o.data }

func (o *Op) Kind() opdata.Kind { return o.data.Kind() }

// Direction reports the logical direction of o's OpData, extracting it
// from whichever field or style enum the concrete kind stores it in.
func (o *Op) Direction() opdata.Direction { return Direction(o.data) }

// Direction extracts the logical direction from any OpData kind; CDL
// encodes it in its style enum rather than a separate field, and the
// NoOp markers have no direction (they are always identity, so Forward
// is reported).
func Direction(d opdata.OpData) opdata.Direction {
	switch v := d.(type) {
	case *opdata.MatrixData:
		return v.Dir
	case *opdata.RangeData:
		return v.Dir
	case *opdata.ExponentData:
		return v.Dir
	case *opdata.LogData:
		return v.Dir
	case *opdata.CDLData:
		return v.Direction()
	case *opdata.ExposureContrastData:
		return v.Dir
	case *opdata.FixedFunctionData:
		return v.Dir
	case *opdata.GradingPrimaryData:
		return v.Dir
	case *opdata.Lut1DData:
		return v.Dir
	case *opdata.Lut3DData:
		return v.Dir
	case *opdata.NoOpData:
		return opdata.DirectionForward
	default:
		return opdata.DirectionUnknown
	}
}

// Validate delegates to the wrapped OpData.
func (o *Op) Validate() error { return o.data.Validate() }

// IsNoOp reports whether removing o from a list changes no pixel.
func (o *Op) IsNoOp() bool { return o.data.IsNoOp() }

// HasChannelCrosstalk reports whether any output channel of o depends
// on more than one input channel, per kind. The optimizer never
// reorders two ops across each other if either returns true here.
func (o *Op) HasChannelCrosstalk() bool {
	switch v := o.data.(type) {
	case *opdata.MatrixData:
		return !isDiagonal(v)
	case *opdata.CDLData:
		return true
	case *opdata.FixedFunctionData:
		return v.Style == opdata.FixedFunctionRGBToHSV || v.Style == opdata.FixedFunctionHSVToRGB
	case *opdata.Lut1DData:
		return v.HueAdjust != opdata.Lut1DHueAdjustOff
	case *opdata.Lut3DData:
		return true
	default:
		return false
	}
}

func isDiagonal(m *opdata.MatrixData) bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if r == c {
				continue
			}
			if m.M.At(r, c) != 0 {
				return false
			}
		}
	}
	return true
}

// SupportedByLegacyShader is metadata consumed by GPU shader
// partitioning; the CPU core only reads it, never acts on it. Kinds
// added after OpenColorIO's original GPU shader generator (grading
// primary, exposure/contrast, fixed-function) report false.
func (o *Op) SupportedByLegacyShader() bool {
	switch o.data.Kind() {
	case opdata.KindGradingPrimary, opdata.KindExposureContrast, opdata.KindFixedFunction:
		return false
	default:
		return true
	}
}

// GetCPUOp returns an immutable CPU renderer for o, specializing on
// direction, clamp style and fast-power mode as cpu.Build dispatches.
func (o *Op) GetCPUOp(fastPower bool) (cpu.PixelOp, error) {
	return cpu.Build(o.data, cpu.Options{
		FastPower:     fastPower,
		SIMDAvailable: kernel.DetectFeatures().SIMDAvailable,
	})
}

// Finalize computes o's cache ID and, for an inverse Lut1D/Lut3D whose
// exact inverse mode is not requested, materializes a fast forward
// approximation (spec §4.5). Safe to call only once; a second call is a
// no-op other than recomputing the (unchanged) cache ID.
func (o *Op) Finalize(flags OptimizationFlags) error {
	if err := o.data.Validate(); err != nil {
		return err
	}
	if err := o.materializeFastInverse(flags); err != nil {
		return err
	}
	o.cacheID = o.Kind().String() + ":" + o.data.CacheID()
	o.finalized = true
	return nil
}

// CacheID returns o's cache identifier; valid only after Finalize.
func (o *Op) CacheID() string { return o.cacheID }

// Finalized reports whether Finalize has run.
func (o *Op) Finalized() bool { return o.finalized }

// Clone deep-copies o, including its wrapped OpData, but not its
// finalized cache ID (the clone must be re-finalized).
func (o *Op) Clone() *Op {
	return &Op{data: o.data.Clone()}
}
