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

// Package oplist is the ordered pipeline of Ops (C6 of the design):
// append, validate, optimize and finalize into an immutable, cache-
// identified executable list a CPUProcessor can render. Mirrors the
// teacher's ops.OpSequence/ops.OperatorParallel composition shape
// (internal/ops/operator.go), generalized from a fixed pixel-stack
// pipeline to an arbitrary color-op pipeline.
package oplist

import (
	"strings"

	"github.com/mlnoga/ocio-core/internal/colorlog"
	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"github.com/mlnoga/ocio-core/internal/op"
	"github.com/mlnoga/ocio-core/internal/opdata"
)

// OpList is an ordered, finite sequence of Ops representing one color
// transformation. It exclusively owns its Ops (spec §3 "Ownership").
type OpList struct {
	ops      []*op.Op
	cacheID  string

	InputBitDepth  opdata.BitDepth
	OutputBitDepth opdata.BitDepth

	finalized bool
}

// New returns an empty OpList with F32 (no bit-depth conversion) input
// and output.
func New() *OpList {
	return &OpList{InputBitDepth: opdata.BitDepthF32, OutputBitDepth: opdata.BitDepthF32}
}

// FromOps builds an OpList from an already-flattened, acyclic sequence
// of Ops, the single hand-off point an external flattener (Look/Config
// cycle resolution) uses per SPEC_FULL.md's supplemented-features
// section; this package performs no cycle detection of its own.
func FromOps(ops []*op.Op) (*OpList, error) {
	l := New()
	for _, o := range ops {
		if err := l.Append(o); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Append validates o and moves it onto the end of the list. The list is
// left unchanged on error (spec §6).
func (l *OpList) Append(o *op.Op) error {
	if l.finalized {
		return &ocioerr.Internal{Reason: "cannot append to a finalized op list"}
	}
	if err := o.Validate(); err != nil {
		return err
	}
	l.ops = append(l.ops, o)
	return nil
}

// Ops returns the list's ops in order. The slice is owned by l; callers
// must not mutate it after finalize.
func (l *OpList) Ops() []*op.Op { return l.ops }

// Len reports the number of ops currently in the list.
func (l *OpList) Len() int { return len(l.ops) }

// Finalized reports whether Finalize has run.
func (l *OpList) Finalized() bool { return l.finalized }

// ValidationError wraps a per-op validation failure with its index in
// the list, per spec §4.6 ("fails at the first error with context").
type ValidationError struct {
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	return "op " + itoa(e.Index) + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// Validate runs every op's Validate, stopping at the first failure.
func (l *OpList) Validate() error {
	for i, o := range l.ops {
		if err := o.Validate(); err != nil {
			return &ValidationError{Index: i, Err: err}
		}
	}
	return nil
}

// CacheID returns the ordered concatenation of the list's ops' cache
// IDs. Valid only after Finalize.
func (l *OpList) CacheID() string { return l.cacheID }

// Finalize runs the optimizer to fixed point, then computes every
// remaining op's cache ID and the list's own cache ID. Idempotent: once
// the list is finalized, further calls return nil and leave the list and
// its cache ID unchanged.
func (l *OpList) Finalize(flags op.OptimizationFlags, logger *colorlog.Logger) error {
	if l.finalized {
		return nil
	}
	if err := l.Validate(); err != nil {
		return err
	}
	if err := l.Optimize(flags, logger); err != nil {
		return err
	}
	var b strings.Builder
	for _, o := range l.ops {
		if err := o.Finalize(flags); err != nil {
			return err
		}
		b.WriteString(o.CacheID())
	}
	l.cacheID = b.String()
	l.finalized = true
	return nil
}

// Clone deep-copies the list, including every op's OpData, as an
// un-finalized list.
func (l *OpList) Clone() *OpList {
	out := &OpList{InputBitDepth: l.InputBitDepth, OutputBitDepth: l.OutputBitDepth}
	for _, o := range l.ops {
		out.ops = append(out.ops, o.Clone())
	}
	return out
}
