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

package glyphpath

import (
	"testing"

	"github.com/cdelker/glyphpath/os2"
)

func TestSubfamily(t *testing.T) {
	info := &Font{
		FamilyName: "Andromeda Nebula",
		Weight:     os2.WeightBold,
		IsItalic:   true,
	}
	if got, want := info.Subfamily(), "Bold Italic"; got != want {
		t.Errorf("Subfamily() = %q, want %q", got, want)
	}
	if got, want := info.FullName(), "Andromeda Nebula Bold Italic"; got != want {
		t.Errorf("FullName() = %q, want %q", got, want)
	}

	plain := &Font{FamilyName: "Andromeda Nebula"}
	if got, want := plain.Subfamily(), "Regular"; got != want {
		t.Errorf("Subfamily() = %q, want %q", got, want)
	}
}
