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

package processor

import "github.com/mlnoga/ocio-core/internal/ocioerr"

// PackedImageDesc describes an interleaved RGB(A) float32 buffer, per
// spec §4.7/§6. Data holds width*height pixels of Channels float32s
// each, row-major. XStride and YStride are in float32 elements (not
// bytes, unlike the spec's byte-stride wording: Go slices are already
// element-typed, so an element stride is the natural fit); zero means
// "use the default" (XStride = Channels, YStride = Width*XStride).
type PackedImageDesc struct {
	Data     []float32
	Width    int
	Height   int
	Channels int
	XStride  int
	YStride  int
}

// resolve fills in default strides and validates the §6 invariants,
// returning the effective (xStride, yStride).
func (d *PackedImageDesc) resolve() (xStride, yStride int, err error) {
	if d.Channels != 3 && d.Channels != 4 {
		return 0, 0, &ocioerr.ImageDescError{Reason: "channels must be 3 or 4"}
	}
	xStride = d.XStride
	if xStride == 0 {
		xStride = d.Channels
	}
	if xStride < d.Channels {
		return 0, 0, &ocioerr.ImageDescError{Reason: "x_stride must be >= channels"}
	}
	yStride = d.YStride
	if yStride == 0 {
		yStride = d.Width * xStride
	}
	if yStride < d.Width*xStride {
		return 0, 0, &ocioerr.ImageDescError{Reason: "y_stride must be >= width*x_stride"}
	}
	minLen := (d.Height-1)*yStride + (d.Width-1)*xStride + d.Channels
	if d.Height > 0 && d.Width > 0 && len(d.Data) < minLen {
		return 0, 0, &ocioerr.ImageDescError{Reason: "data buffer too small for the declared geometry"}
	}
	return xStride, yStride, nil
}

// PlanarImageDesc describes three or four separate same-sized planes
// (R, G, B and an optional A), each row-major with its own YStride
// (element stride, one row = YStride float32s).
type PlanarImageDesc struct {
	R, G, B []float32
	A       []float32 // optional; nil means alpha = 1 throughout
	Width   int
	Height  int
	YStride int
}

func (d *PlanarImageDesc) resolve() (yStride int, err error) {
	yStride = d.YStride
	if yStride == 0 {
		yStride = d.Width
	}
	if yStride < d.Width {
		return 0, &ocioerr.ImageDescError{Reason: "y_stride must be >= width"}
	}
	minLen := (d.Height-1)*yStride + d.Width
	if d.Height > 0 && d.Width > 0 {
		if len(d.R) < minLen || len(d.G) < minLen || len(d.B) < minLen {
			return 0, &ocioerr.ImageDescError{Reason: "plane buffer too small for the declared geometry"}
		}
		if d.A != nil && len(d.A) < minLen {
			return 0, &ocioerr.ImageDescError{Reason: "alpha plane buffer too small for the declared geometry"}
		}
	}
	return yStride, nil
}
