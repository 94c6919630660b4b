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

// Package processor is the public façade (C7 of the design): it wraps a
// finalized oplist.OpList into a CPUProcessor that iterates packed or
// planar image buffers and applies the pipeline row by row, gathering
// 3-channel rows into a 4-wide scratch and scattering them back.
// Mirrors the teacher's top-level Operator pipeline run in
// cmd/nightlight/main.go, generalized from a fixed FITS pixel-stack
// pass to an arbitrary finalized color-op pipeline.
package processor

import (
	"runtime"

	"github.com/mlnoga/ocio-core/internal/cpu"
	"github.com/mlnoga/ocio-core/internal/kernel"
	"github.com/mlnoga/ocio-core/internal/ocioerr"
	"github.com/mlnoga/ocio-core/internal/oplist"
	"github.com/pbnjay/memory"
)

// CPUProcessor applies a finalized OpList to image buffers. The zero
// value is not usable; construct with From.
type CPUProcessor struct {
	pixelOps []cpu.PixelOp
	cacheID  string
}

// From materializes a CPUProcessor from list, which must already be
// finalized (spec §6 `CPUProcessor::from(op_list)`). The processor holds
// no reference to list itself, only the renderers it extracts: a
// finalized OpList is immutable, so this is a snapshot, not a view.
func From(list *oplist.OpList) (*CPUProcessor, error) {
	if !list.Finalized() {
		return nil, &ocioerr.FinalizationRequired{}
	}
	features := kernel.DetectFeatures()
	ops := list.Ops()
	pixelOps := make([]cpu.PixelOp, len(ops))
	for i, o := range ops {
		fn, err := o.GetCPUOp(features.FastPower)
		if err != nil {
			return nil, err
		}
		pixelOps[i] = fn
	}
	return &CPUProcessor{pixelOps: pixelOps, cacheID: list.CacheID()}, nil
}

// CacheID returns the cache identifier of the OpList this processor was
// built from.
func (p *CPUProcessor) CacheID() string { return p.cacheID }

// applyPixel runs every renderer over rgba in order.
func (p *CPUProcessor) applyPixel(rgba [4]float32) [4]float32 {
	for _, fn := range p.pixelOps {
		rgba = fn(rgba)
	}
	return rgba
}

// scratchChunk bounds how many pixels a single channels=3 gather/scatter
// scratch buffer covers, keeping per-call scratch allocation page-sized
// (spec §4.7 "page-sized chunks") rather than one allocation per row or
// one for the whole image.
const scratchChunk = 4096

// ApplyPacked applies the pipeline to desc in place, row-major, per spec
// §5/§6. desc.Data is mutated; in == out is always safe.
func (p *CPUProcessor) ApplyPacked(desc *PackedImageDesc) error {
	xStride, yStride, err := desc.resolve()
	if err != nil {
		return err
	}
	if desc.Channels == 4 {
		for y := 0; y < desc.Height; y++ {
			row := desc.Data[y*yStride:]
			for x := 0; x < desc.Width; x++ {
				off := x * xStride
				in := [4]float32{row[off], row[off+1], row[off+2], row[off+3]}
				out := p.applyPixel(in)
				row[off], row[off+1], row[off+2], row[off+3] = out[0], out[1], out[2], out[3]
			}
		}
		return nil
	}
	// channels == 3: gather into a 4-wide scratch in page-sized chunks,
	// apply, scatter back.
	var scratch [scratchChunk][4]float32
	for y := 0; y < desc.Height; y++ {
		row := desc.Data[y*yStride:]
		for x0 := 0; x0 < desc.Width; x0 += scratchChunk {
			n := desc.Width - x0
			if n > scratchChunk {
				n = scratchChunk
			}
			for i := 0; i < n; i++ {
				off := (x0 + i) * xStride
				scratch[i] = [4]float32{row[off], row[off+1], row[off+2], 1}
			}
			for i := 0; i < n; i++ {
				scratch[i] = p.applyPixel(scratch[i])
			}
			for i := 0; i < n; i++ {
				off := (x0 + i) * xStride
				row[off], row[off+1], row[off+2] = scratch[i][0], scratch[i][1], scratch[i][2]
			}
		}
	}
	return nil
}

// ApplyPlanar applies the pipeline to desc in place across its R, G, B
// (and optional A) planes.
func (p *CPUProcessor) ApplyPlanar(desc *PlanarImageDesc) error {
	yStride, err := desc.resolve()
	if err != nil {
		return err
	}
	for y := 0; y < desc.Height; y++ {
		rowOff := y * yStride
		r := desc.R[rowOff : rowOff+desc.Width]
		g := desc.G[rowOff : rowOff+desc.Width]
		b := desc.B[rowOff : rowOff+desc.Width]
		var a []float32
		if desc.A != nil {
			a = desc.A[rowOff : rowOff+desc.Width]
		}
		for x := 0; x < desc.Width; x++ {
			alpha := float32(1)
			if a != nil {
				alpha = a[x]
			}
			out := p.applyPixel([4]float32{r[x], g[x], b[x], alpha})
			r[x], g[x], b[x] = out[0], out[1], out[2]
			if a != nil {
				a[x] = out[3]
			}
		}
	}
	return nil
}

// RecommendedChunkRows suggests how many rows of a packed image of the
// given width and channel count a single apply call should cover when an
// external caller partitions a large image across goroutines for
// data-parallel apply (spec §5 "external code may partition an image and
// call apply concurrently on disjoint sub-images"), sized to keep one
// chunk's working set within a fair share of total system memory.
// Mirrors the teacher's batch-sizing calculation in internal/batch.go,
// which divides memory.TotalMemory() by a per-unit working set instead
// of querying free memory directly.
func RecommendedChunkRows(width, channels, workers int) int {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	bytesPerRow := uint64(width * channels * 4)
	if bytesPerRow == 0 {
		return 1
	}
	budget := memory.TotalMemory() / uint64(workers)
	rows := int(budget / bytesPerRow)
	if rows < 1 {
		rows = 1
	}
	return rows
}
