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

// NoOpData is an identity marker carrying only provenance, for NoOp,
// FileNoOp and LookNoOp (§3's "identity markers for provenance" row).
// Description is never consulted by IsIdentity/IsNoOp; it exists purely
// for diagnostics, matching OpenColorIO's NoOps.cpp which stashes the
// originating file path or look name on the same marker types.
type NoOpData struct {
	NoOpKind    Kind // one of KindNoOp, KindFileNoOp, KindLookNoOp
	Description string
}

var _ OpData = (*NoOpData)(nil)

func NewNoOpData(kind Kind, description string) *NoOpData {
	return &NoOpData{NoOpKind: kind, Description: description}
}

func (d *NoOpData) Kind() Kind { return d.NoOpKind }

func (d *NoOpData) Validate() error { return nil }

func (d *NoOpData) IsIdentity() bool { return true }

func (d *NoOpData) IsNoOp() bool { return true }

func (d *NoOpData) CacheID() string {
	return buildCacheID(d.NoOpKind, "desc="+d.Description)
}

func (d *NoOpData) Clone() OpData {
	c := *d
	return &c
}
