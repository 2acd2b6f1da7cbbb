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

package glyf

import (
	"github.com/cdelker/glyphpath/parser"
)

// decodeLoca reads the offsets stored in the "loca" table.  The result
// has one more entry than there are glyphs in the font; offs[i] and
// offs[i+1] delimit the bytes of glyph i within enc.GlyfData.
func decodeLoca(enc *Encoded) ([]int, error) {
	data := enc.LocaData

	var offs []int
	switch enc.LocaFormat {
	case 0: // short offsets, stored as data[i]/2
		if len(data)%2 != 0 || len(data) < 4 {
			return nil, &parser.InvalidFontError{
				SubSystem: "loca",
				Reason:    "malformed short loca table",
			}
		}
		offs = make([]int, len(data)/2)
		for i := range offs {
			offs[i] = 2 * (int(data[2*i])<<8 | int(data[2*i+1]))
		}
	case 1: // long offsets
		if len(data)%4 != 0 || len(data) < 8 {
			return nil, &parser.InvalidFontError{
				SubSystem: "loca",
				Reason:    "malformed long loca table",
			}
		}
		offs = make([]int, len(data)/4)
		for i := range offs {
			offs[i] = int(data[4*i])<<24 | int(data[4*i+1])<<16 |
				int(data[4*i+2])<<8 | int(data[4*i+3])
		}
	default:
		return nil, &parser.NotSupportedError{
			SubSystem: "loca",
			Feature:   "indexToLocFormat value",
		}
	}

	for i, o := range offs {
		if o < 0 || o > len(enc.GlyfData) {
			return nil, &parser.InvalidFontError{
				SubSystem: "loca",
				Reason:    "offset out of range",
			}
		}
		if i > 0 && o < offs[i-1] {
			return nil, &parser.InvalidFontError{
				SubSystem: "loca",
				Reason:    "offsets not monotonically increasing",
			}
		}
	}

	return offs, nil
}
