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

import (
	"math"
	"testing"

	"github.com/mlnoga/ocio-core/internal/op"
	"github.com/mlnoga/ocio-core/internal/opdata"
	"github.com/mlnoga/ocio-core/internal/oplist"
)

func scaleByTwoList(t *testing.T) *oplist.OpList {
	t.Helper()
	l := oplist.New()
	m := [16]float64{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 1,
	}
	if err := l.AppendMatrix(m, [4]float64{}, opdata.DirectionForward); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Finalize(op.FlagDefault, nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return l
}

func TestFromRequiresFinalized(t *testing.T) {
	l := oplist.New()
	if err := l.AppendMatrix([16]float64{}, [4]float64{}, opdata.DirectionForward); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := From(l); err == nil {
		t.Fatalf("expected FinalizationRequired error from an un-finalized list")
	}
}

func TestApplyPackedChannels4(t *testing.T) {
	l := scaleByTwoList(t)
	p, err := From(l)
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	desc := &PackedImageDesc{
		Data:     []float32{0.1, 0.2, 0.3, 1, 0.4, 0.5, 0.6, 0.5},
		Width:    2,
		Height:   1,
		Channels: 4,
	}
	if err := p.ApplyPacked(desc); err != nil {
		t.Fatalf("ApplyPacked: %v", err)
	}
	want := []float32{0.2, 0.4, 0.6, 1, 0.8, 1.0, 1.2, 0.5}
	for i := range want {
		if math.Abs(float64(desc.Data[i]-want[i])) > 1e-5 {
			t.Errorf("data[%d] = %v, want %v", i, desc.Data[i], want[i])
		}
	}
}

func TestApplyPackedChannels3GatherScatter(t *testing.T) {
	l := scaleByTwoList(t)
	p, err := From(l)
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	desc := &PackedImageDesc{
		Data:     []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
		Width:    2,
		Height:   1,
		Channels: 3,
	}
	if err := p.ApplyPacked(desc); err != nil {
		t.Fatalf("ApplyPacked: %v", err)
	}
	want := []float32{0.2, 0.4, 0.6, 0.8, 1.0, 1.2}
	for i := range want {
		if math.Abs(float64(desc.Data[i]-want[i])) > 1e-5 {
			t.Errorf("data[%d] = %v, want %v", i, desc.Data[i], want[i])
		}
	}
}

func TestApplyPlanarAlphaDefaultsToOne(t *testing.T) {
	// Scale RGB by 2 and add alpha into B, so the default alpha shows up
	// in the B plane.
	l := oplist.New()
	m := [16]float64{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 1,
		0, 0, 0, 1,
	}
	if err := l.AppendMatrix(m, [4]float64{}, opdata.DirectionForward); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Finalize(op.FlagDefault, nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	p, err := From(l)
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	desc := &PlanarImageDesc{
		R: []float32{0.1, 0.2}, G: []float32{0.3, 0.4}, B: []float32{0.5, 0.6},
		Width: 2, Height: 1,
	}
	if err := p.ApplyPlanar(desc); err != nil {
		t.Fatalf("ApplyPlanar: %v", err)
	}
	wantR := []float32{0.2, 0.4}
	for i := range wantR {
		if math.Abs(float64(desc.R[i]-wantR[i])) > 1e-5 {
			t.Errorf("R[%d] = %v, want %v", i, desc.R[i], wantR[i])
		}
	}
	wantB := []float32{2.0, 2.2}
	for i := range wantB {
		if math.Abs(float64(desc.B[i]-wantB[i])) > 1e-5 {
			t.Errorf("B[%d] = %v, want %v", i, desc.B[i], wantB[i])
		}
	}
}

func TestPackedImageDescInvalidChannels(t *testing.T) {
	l := scaleByTwoList(t)
	p, err := From(l)
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	desc := &PackedImageDesc{Data: make([]float32, 8), Width: 2, Height: 1, Channels: 5}
	if err := p.ApplyPacked(desc); err == nil {
		t.Fatalf("expected ImageDescError for channels=5")
	}
}

func TestRecommendedChunkRowsAtLeastOne(t *testing.T) {
	if rows := RecommendedChunkRows(4096, 4, 8); rows < 1 {
		t.Errorf("RecommendedChunkRows = %d, want >= 1", rows)
	}
}
