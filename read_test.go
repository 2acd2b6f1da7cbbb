// github.com/cdelker/glyphpath - a library for reading font files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

package glyphpath

import (
	"bytes"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// TestReadGoRegular is a smoke test that the embedded Go Regular TTF
// loads and exposes sane top-level metrics.
func TestReadGoRegular(t *testing.T) {
	info, err := Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	if info.NumGlyphs() == 0 {
		t.Error("NumGlyphs() = 0, want > 0")
	}
	if info.UnitsPerEm == 0 {
		t.Error("UnitsPerEm = 0, want > 0")
	}
	if info.Ascent <= 0 {
		t.Errorf("Ascent = %d, want > 0", info.Ascent)
	}
}

// TestReadNilGDEFDegrades is a regression test for
// https://github.com/seehuhn/go-sfnt/issues/1: a GDEF table that is
// absent (or, per header.Info.Has, present but empty) must not make
// font loading fail, and mark filtering in shaping must degrade to
// "no glyph is a mark" rather than panicking on a nil table.
func TestReadNilGDEFDegrades(t *testing.T) {
	info, err := Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	if info.Gdef != nil {
		t.Fatalf("Go Regular unexpectedly has a GDEF table; test fixture assumption broke")
	}
	if info.Gdef.IsMark(0) {
		t.Error("IsMark on a nil GDEF table should report false")
	}
}
