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

import "github.com/cdelker/glyphpath/glyph"

// Reverse returns the mapping from glyph ID to code points, for
// inspection.  Since several code points can map to the same glyph,
// the result is a multimap; the code points for each glyph are in
// increasing order.  Code points mapped to glyph 0 (".notdef") are
// not included.
func Reverse(s Subtable) map[glyph.ID][]rune {
	res := make(map[glyph.ID][]rune)
	low, high := s.CodeRange()
	for r := low; r <= high; r++ {
		gid := s.Lookup(r)
		if gid == 0 {
			continue
		}
		res[gid] = append(res[gid], r)
	}
	return res
}
