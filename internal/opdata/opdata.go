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

// Package opdata holds the immutable, value-typed parameter blocks for
// every operator kind (C2 of the design): matrix, range, exponent, log,
// CDL, fixed-function, grading primary, 1D/3D LUT and the no-op markers.
// An OpData validates its own parameters and computes a stable cache
// identifier from them; it never mutates after construction.
package opdata

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// Kind tags the polymorphic OpData variants, taking the place of the
// source's virtual-dispatch class hierarchy (see spec §9 design notes).
type Kind int

const (
	KindMatrix Kind = iota
	KindRange
	KindExponent
	KindLog
	KindCDL
	KindExposureContrast
	KindFixedFunction
	KindGradingPrimary
	KindLut1D
	KindLut3D
	KindNoOp
	KindFileNoOp
	KindLookNoOp
)

func (k Kind) String() string {
	switch k {
	case KindMatrix:
		return "Matrix"
	case KindRange:
		return "Range"
	case KindExponent:
		return "Exponent"
	case KindLog:
		return "Log"
	case KindCDL:
		return "CDL"
	case KindExposureContrast:
		return "ExposureContrast"
	case KindFixedFunction:
		return "FixedFunction"
	case KindGradingPrimary:
		return "GradingPrimary"
	case KindLut1D:
		return "Lut1D"
	case KindLut3D:
		return "Lut3D"
	case KindNoOp:
		return "NoOp"
	case KindFileNoOp:
		return "FileNoOp"
	case KindLookNoOp:
		return "LookNoOp"
	default:
		return "Unknown"
	}
}

// Direction is Forward, Inverse, or the invalid Unknown sentinel; an
// Unknown direction is a contract violation once an op list is
// finalized.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionForward
	DirectionInverse
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "Forward"
	case DirectionInverse:
		return "Inverse"
	default:
		return "Unknown"
	}
}

// Inverted returns the opposite direction; Unknown maps to Unknown.
func (d Direction) Inverted() Direction {
	switch d {
	case DirectionForward:
		return DirectionInverse
	case DirectionInverse:
		return DirectionForward
	default:
		return DirectionUnknown
	}
}

// BitDepth enumerates the fixed set of pixel encodings the core
// understands at the input/output ends of an op list (§3). The pipeline
// interior always runs in F32.
type BitDepth int

const (
	BitDepthUnknown BitDepth = iota
	BitDepthU8
	BitDepthU10
	BitDepthU12
	BitDepthU14
	BitDepthU16
	BitDepthU32
	BitDepthF16
	BitDepthF32
)

// MaxValue returns the scale factor used to convert between a bit
// depth's native range and the core's normalized F32 range: 2^n-1 for
// integer depths, 1.0 for float depths.
func (b BitDepth) MaxValue() float64 {
	switch b {
	case BitDepthU8:
		return 255
	case BitDepthU10:
		return 1023
	case BitDepthU12:
		return 4095
	case BitDepthU14:
		return 16383
	case BitDepthU16:
		return 65535
	case BitDepthU32:
		return 4294967295
	case BitDepthF16, BitDepthF32:
		return 1
	default:
		return 1
	}
}

// IsFloat reports whether b is one of the float encodings (including
// Unknown, which the core treats as already-normalized F32).
func (b BitDepth) IsFloat() bool {
	switch b {
	case BitDepthF16, BitDepthF32, BitDepthUnknown:
		return true
	default:
		return false
	}
}

// OpData is the contract every transform kind's parameter block
// satisfies (§4.2). Implementations are immutable value types; Clone
// deep-copies any owned slices.
type OpData interface {
	Kind() Kind
	// Validate fails with an *ocioerr.InvalidParameter when the
	// parameters violate the kind's invariants.
	Validate() error
	// IsIdentity conservatively reports whether applying this op is a
	// no-op for every input; it may return false for an identity
	// encoded unusually, but never true for a non-identity.
	IsIdentity() bool
	// IsNoOp reports whether removing this op from a list changes no
	// pixel. Must be safe to call only after Validate succeeds.
	IsNoOp() bool
	// CacheID deterministically encodes the parameters at fixed
	// precision (7 significant digits), stable across runs.
	CacheID() string
	// Clone deep-copies the OpData.
	Clone() OpData
}

// cachePrecision is the number of significant digits used when
// formatting floats into a cache ID, per spec §3.
const cachePrecision = 7

// formatFloat renders one float64 at the cache ID's fixed precision.
func formatFloat(v float64) string {
	return fmt.Sprintf("%.*g", cachePrecision, v)
}

// formatFloats renders a slice of float64 joined by commas, used to
// build the parameter portion of a cache ID.
func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ",")
}

// buildCacheID assembles "Kind{field=value;field=value}" from ordered
// (name, value) pairs, the shape every concrete OpData's CacheID uses.
func buildCacheID(kind Kind, fields ...string) string {
	var b strings.Builder
	b.WriteString(kind.String())
	b.WriteByte('{')
	b.WriteString(strings.Join(fields, ";"))
	b.WriteByte('}')
	return b.String()
}

// hashFloat32Tables folds one or more full float32 sample tables into a
// single FNV-1a digest, so a large LUT's CacheID distinguishes any two
// tables that differ anywhere, not just at a handful of probed
// positions, while staying O(n) instead of carrying every sample's
// decimal text into the cache ID string.
func hashFloat32Tables(tables ...[]float32) string {
	h := fnv.New64a()
	var buf [4]byte
	for _, table := range tables {
		for _, v := range table {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
			h.Write(buf[:])
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
