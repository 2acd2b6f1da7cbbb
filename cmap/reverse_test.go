// github.com/cdelker/glyphpath - a library for reading font files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

package cmap

import (
	"reflect"
	"testing"

	"github.com/cdelker/glyphpath/glyph"
)

func TestReverse(t *testing.T) {
	sub := Format4{
		0x41: 5, // 'A'
		0x61: 5, // 'a' mapped to the same glyph
		0x42: 6, // 'B'
	}
	rev := Reverse(sub)

	if got := rev[5]; !reflect.DeepEqual(got, []rune{'A', 'a'}) {
		t.Errorf("glyph 5: got %q", got)
	}
	if got := rev[6]; !reflect.DeepEqual(got, []rune{'B'}) {
		t.Errorf("glyph 6: got %q", got)
	}
	if _, ok := rev[0]; ok {
		t.Error("reverse map contains .notdef")
	}
}
