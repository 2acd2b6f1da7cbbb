// github.com/cdelker/glyphpath - a library for reading and writing font files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
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

package cff

import (
	"bytes"
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"

	"github.com/cdelker/glyphpath/glyph"
)

func TestGlyphBBoxPDF(t *testing.T) {
	g := &Glyph{
		Name: "test",
		Cmds: []GlyphOp{
			{Op: OpMoveTo, Args: []float64{-16, -16}},
			{Op: OpLineTo, Args: []float64{128, -16}},
			{Op: OpLineTo, Args: []float64{128, 128}},
			{Op: OpLineTo, Args: []float64{-16, 128}},
		},
	}
	O := &Outlines{
		Glyphs: []*Glyph{g},
	}
	fontMatrix := matrix.Matrix{1 / 4.0, 0, 0, 1 / 8.0, 0, 0}
	bbox := O.GlyphBBoxPDF(fontMatrix, 0)

	if math.Abs(bbox.LLx-(-4_000)) > 1e-7 {
		t.Errorf("bbox.LLx = %v, want -4000", bbox.LLx)
	}
	if math.Abs(bbox.LLy-(-2_000)) > 1e-7 {
		t.Errorf("bbox.LLy = %v, want -2000", bbox.LLy)
	}
	if math.Abs(bbox.URx-32_000) > 1e-7 {
		t.Errorf("bbox.URx = %v, want 32000", bbox.URx)
	}
	if math.Abs(bbox.URy-16_000) > 1e-7 {
		t.Errorf("bbox.URy = %v, want 16000", bbox.URy)
	}
}

func FuzzFont(f *testing.F) {
	f.Fuzz(func(t *testing.T, data []byte) {
		font, err := Read(bytes.NewReader(data))
		if err != nil {
			return
		}

		// anything that decodes must be internally consistent
		if len(font.Glyphs) == 0 {
			t.Fatal("decoded font has no glyphs")
		}
		for gid, g := range font.Glyphs {
			if g == nil {
				t.Fatalf("glyph %d is nil", gid)
			}
		}
		if font.FDSelect == nil {
			t.Fatal("decoded font has no FDSelect")
		}
		for gid := range font.Glyphs {
			fd := font.FDSelect(glyph.ID(gid))
			if fd < 0 || fd >= len(font.Private) {
				t.Fatalf("glyph %d: font dict %d out of range", gid, fd)
			}
		}
	})
}
