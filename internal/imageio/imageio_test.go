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

package imageio

import (
	"bytes"
	"math"
	"testing"

	"github.com/mlnoga/ocio-core/internal/processor"
)

func TestPNGRoundTrip(t *testing.T) {
	desc := &processor.PackedImageDesc{
		Data: []float32{
			1, 0, 0, 1,
			0, 1, 0, 1,
			0, 0, 1, 0.5,
			1, 1, 1, 1,
		},
		Width: 2, Height: 2, Channels: 4,
	}
	var buf bytes.Buffer
	if err := Encode(&buf, desc, "out.png"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(&buf, "out.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Width != desc.Width || decoded.Height != desc.Height {
		t.Fatalf("geometry mismatch: got %dx%d, want %dx%d", decoded.Width, decoded.Height, desc.Width, desc.Height)
	}
	for i := range desc.Data {
		if math.Abs(float64(decoded.Data[i]-desc.Data[i])) > 1e-3 {
			t.Errorf("sample %d = %v, want %v", i, decoded.Data[i], desc.Data[i])
		}
	}
}

func TestEncodeClampsNaN(t *testing.T) {
	desc := &processor.PackedImageDesc{
		Data:     []float32{float32(math.NaN()), -1, 2, 1},
		Width:    1, Height: 1, Channels: 4,
	}
	var buf bytes.Buffer
	if err := Encode(&buf, desc, "out.png"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(&buf, "out.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Data[0] != 0 || decoded.Data[1] != 0 || decoded.Data[2] != 1 {
		t.Errorf("expected NaN/negative clamped to 0 and overflow clamped to 1, got %v", decoded.Data[:3])
	}
}

func TestIsTIFFExt(t *testing.T) {
	cases := map[string]bool{"a.tif": true, "a.TIFF": true, "a.png": false, "a": false}
	for in, want := range cases {
		if got := isTIFFExt(in); got != want {
			t.Errorf("isTIFFExt(%q) = %v, want %v", in, got, want)
		}
	}
}
