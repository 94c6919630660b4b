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

// Command occoreutil is a small demo CLI exercising the core end to
// end: it builds an OpList from flags, finalizes it, loads an input
// image, runs it through a CPUProcessor and writes the result back out.
// Mirrors the teacher's cmd/nightlight/main.go: stdlib flag, no config
// framework, a version/legal subcommand, and a startup memory line
// using the same pbnjay/memory call the teacher uses for -stMemory's
// default.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pbnjay/memory"

	"github.com/mlnoga/ocio-core/internal/imageio"
	"github.com/mlnoga/ocio-core/internal/op"
	"github.com/mlnoga/ocio-core/internal/opdata"
	"github.com/mlnoga/ocio-core/internal/oplist"
	"github.com/mlnoga/ocio-core/internal/processor"
)

const version = "0.1.0"

var totalMiBs = memory.TotalMemory() / 1024 / 1024

var in = flag.String("in", "", "input image `file` (PNG or TIFF)")
var out = flag.String("out", "out.png", "output image `file` (PNG or TIFF)")

var exposure = flag.Float64("exposure", 0, "exposure adjustment in stops, 0=no op")
var gamma = flag.Float64("gamma", 1, "output gamma, applied as a forward Exponent op, 1=no op")

var cdlSlope = flag.Float64("cdlSlope", 1, "CDL slope applied equally to R, G and B, 1=no op")
var cdlSat = flag.Float64("cdlSat", 1, "CDL saturation, 1=no op")

var optFlags = flag.Int64("optFlags", int64(op.FlagDefault), "optimizer flags bit-set, see internal/op.OptimizationFlags")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `occoreutil Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (run|version|legal)

Commands:
  run      Build an op list from flags and apply it to -in, writing -out
  version  Show version information
  legal    Show license and attribution information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		return
	}

	switch args[0] {
	case "version":
		fmt.Printf("occoreutil %s, physical memory %d MiB\n", version, totalMiBs)
	case "legal":
		printLegal()
	case "run":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
	}
}

func run() error {
	if *in == "" {
		return fmt.Errorf("-in is required")
	}
	list := oplist.New()
	if *exposure != 0 {
		if err := list.AppendExposureContrast(*exposure, 1, 1, 0.18, opdata.ExposureContrastStyleVideo, opdata.DirectionForward); err != nil {
			return fmt.Errorf("append exposure/contrast: %w", err)
		}
	}
	if *cdlSlope != 1 || *cdlSat != 1 {
		slope := [3]float64{*cdlSlope, *cdlSlope, *cdlSlope}
		offset := [3]float64{0, 0, 0}
		power := [3]float64{1, 1, 1}
		if err := list.AppendCDL(slope, offset, power, *cdlSat, opdata.CDLStyleV12Forward); err != nil {
			return fmt.Errorf("append CDL: %w", err)
		}
	}
	if *gamma != 1 {
		if err := list.AppendExponent([4]float64{*gamma, *gamma, *gamma, 1}, opdata.DirectionForward); err != nil {
			return fmt.Errorf("append exponent: %w", err)
		}
	}

	if err := list.Finalize(op.OptimizationFlags(*optFlags), nil); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	fmt.Printf("op list cache id: %s\n", list.CacheID())

	desc, err := imageio.Load(*in)
	if err != nil {
		return fmt.Errorf("load %s: %w", *in, err)
	}
	proc, err := processor.From(list)
	if err != nil {
		return fmt.Errorf("build processor: %w", err)
	}
	if err := proc.ApplyPacked(desc); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	if err := imageio.Save(*out, desc); err != nil {
		return fmt.Errorf("save %s: %w", *out, err)
	}
	return nil
}

func printLegal() {
	fmt.Println(`occoreutil is built on the following open source components:

| Component                                                        | License                                 |
|-------------------------------------------------------------------|------------------------------------------|
| github.com/gin-gonic/gin                                         | MIT License                             |
| github.com/klauspost/cpuid/v2                                    | MIT License                             |
| github.com/lucasb-eyer/go-colorful                               | MIT License                             |
| github.com/pbnjay/memory                                         | BSD 3-Clause "New" or "Revised" License |
| github.com/valyala/fastrand                                      | MIT License                             |
| golang.org/x/image                                               | BSD 3-Clause "New" or "Revised" License |
| gonum.org/v1/gonum                                                | BSD 3-Clause "New" or "Revised" License |`)
}
