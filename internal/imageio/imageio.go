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

// Package imageio is a small packed-image PNG/TIFF loader/saver used by
// the cmd/occoreutil demo to run a file through a processor.CPUProcessor
// and write the result back out, demonstrating PackedImageDesc end to
// end without pulling file-format parsing into the core (spec §1 excludes
// file formats from the core itself). Grounded on the teacher's
// internal/fits/tiff16.go and writetiff16.go, generalized from FITS'
// planar float32 layout to the core's packed RGBA float32 layout.
package imageio

import (
	"bufio"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/mlnoga/ocio-core/internal/processor"
)

// Load decodes a PNG or TIFF file at path into a 4-channel
// PackedImageDesc with float32 samples in [0,1], alpha defaulting to 1
// for formats without an alpha channel.
func Load(path string) (*processor.PackedImageDesc, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(bufio.NewReader(file), path)
}

// Decode decodes r as PNG or TIFF depending on ext's suffix (".tif",
// ".tiff" select TIFF; anything else is tried as PNG).
func Decode(r io.Reader, ext string) (*processor.PackedImageDesc, error) {
	var img image.Image
	var err error
	if isTIFFExt(ext) {
		img, err = tiff.Decode(r)
	} else {
		img, err = png.Decode(r)
	}
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	data := make([]float32, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			off := (y*width + x) * 4
			data[off+0] = float32(c.R) / 65535
			data[off+1] = float32(c.G) / 65535
			data[off+2] = float32(c.B) / 65535
			data[off+3] = float32(c.A) / 65535
		}
	}
	return &processor.PackedImageDesc{Data: data, Width: width, Height: height, Channels: 4}, nil
}

// Save writes desc to path as PNG or 16-bit TIFF depending on its
// extension, clamping samples to [0,1] (replacing NaN with 0, mirroring
// the teacher's "replace NaNs with zeros for export" policy).
func Save(path string, desc *processor.PackedImageDesc) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := Encode(w, desc, path); err != nil {
		return err
	}
	return w.Flush()
}

// Encode writes desc to w as PNG or TIFF depending on ext's suffix.
func Encode(w io.Writer, desc *processor.PackedImageDesc, ext string) error {
	img := image.NewNRGBA64(image.Rect(0, 0, desc.Width, desc.Height))
	xStride := desc.XStride
	if xStride == 0 {
		xStride = desc.Channels
	}
	yStride := desc.YStride
	if yStride == 0 {
		yStride = desc.Width * xStride
	}
	for y := 0; y < desc.Height; y++ {
		row := desc.Data[y*yStride:]
		for x := 0; x < desc.Width; x++ {
			off := x * xStride
			r, g, b := clamp01NaNToZero(row[off]), clamp01NaNToZero(row[off+1]), clamp01NaNToZero(row[off+2])
			a := float32(1)
			if desc.Channels == 4 {
				a = clamp01NaNToZero(row[off+3])
			}
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: uint16(r * 65535),
				G: uint16(g * 65535),
				B: uint16(b * 65535),
				A: uint16(a * 65535),
			})
		}
	}
	if isTIFFExt(ext) {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return png.Encode(w, img)
}

func clamp01NaNToZero(v float32) float32 {
	if v != v || v < 0 { // v != v is the idiomatic NaN test
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isTIFFExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".tif" || ext == ".tiff"
}
