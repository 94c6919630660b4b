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

// Package ocioerr defines the core's error taxonomy. Every error the
// pipeline can raise outside the allocation-free kernels is one of the
// types here, so callers can recover with errors.As instead of parsing
// strings.
package ocioerr

import "fmt"

// InvalidParameter is returned by OpData validation when a parameter
// violates its kind's invariants (out-of-range grid size, zero exponent
// in inverse direction, non-monotone pivot, and so on).
type InvalidParameter struct {
	Kind   string
	Reason string
}

func (e *InvalidParameter) Error() string {
	return fmt.Sprintf("invalid parameter for %s: %s", e.Kind, e.Reason)
}

// UnsupportedStyle is returned when the CPU renderer dispatcher has no
// implementation for a (kind, style) pair.
type UnsupportedStyle struct {
	Kind  string
	Style string
}

func (e *UnsupportedStyle) Error() string {
	return fmt.Sprintf("unsupported style %q for op kind %s", e.Style, e.Kind)
}

// InversionFailed is returned when a 1D or 3D LUT inverse cannot be
// constructed, even in fast-approximation mode.
type InversionFailed struct {
	Kind   string
	Reason string
}

func (e *InversionFailed) Error() string {
	return fmt.Sprintf("inversion failed for %s: %s", e.Kind, e.Reason)
}

// UnsupportedCompose is returned when the optimizer is asked to fuse two
// ops whose kinds cannot be composed. Callers should treat this as "do
// not fuse", never as a fatal condition.
type UnsupportedCompose struct {
	AKind string
	BKind string
}

func (e *UnsupportedCompose) Error() string {
	return fmt.Sprintf("cannot compose %s with %s", e.AKind, e.BKind)
}

// FinalizationRequired is returned by processor.From when called on an
// OpList that has not been finalized yet.
type FinalizationRequired struct{}

func (e *FinalizationRequired) Error() string {
	return "op list must be finalized before apply"
}

// ImageDescError is returned when an image description's strides or
// channel count violate the §6 invariants.
type ImageDescError struct {
	Reason string
}

func (e *ImageDescError) Error() string {
	return fmt.Sprintf("invalid image description: %s", e.Reason)
}

// Internal signals an invariant violation inside the core itself. It is
// not recoverable by fixing caller-supplied parameters.
type Internal struct {
	Reason string
}

func (e *Internal) Error() string {
	return fmt.Sprintf("internal error: %s", e.Reason)
}
