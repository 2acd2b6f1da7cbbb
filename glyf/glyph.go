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
	"encoding/binary"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/parser"
)

// Glyph represents one entry of the "glyf" table.  Data holds either a
// SimpleGlyph or a CompositeGlyph, depending on the sign of the
// numberOfContours field read from the table.
type Glyph struct {
	Rect16 funit.Rect16
	Data   any
}

// decodeGlyph decodes a single glyph from the raw "glyf" table bytes
// belonging to one glyph entry (as sliced out using the "loca" offsets).
// An empty slice represents a glyph with no outline (e.g. the space
// character), for which decodeGlyph returns a Glyph with a SimpleGlyph
// holding no contours.
func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return &Glyph{Data: SimpleGlyph{}}, nil
	}
	if len(data) < 10 {
		return nil, &parser.InvalidFontError{
			SubSystem: "glyf",
			Reason:    "glyph header truncated",
		}
	}

	numContours := int16(binary.BigEndian.Uint16(data[0:2]))
	rect16 := funit.Rect16{
		LLx: funit.Int16(int16(binary.BigEndian.Uint16(data[2:4]))),
		LLy: funit.Int16(int16(binary.BigEndian.Uint16(data[4:6]))),
		URx: funit.Int16(int16(binary.BigEndian.Uint16(data[6:8]))),
		URy: funit.Int16(int16(binary.BigEndian.Uint16(data[8:10]))),
	}
	body := data[10:]

	switch {
	case numContours >= 0:
		return &Glyph{
			Rect16: rect16,
			Data: SimpleGlyph{
				NumContours: numContours,
				Encoded:     body,
			},
		}, nil
	case numContours == -1:
		comp, err := decodeGlyphComposite(body)
		if err != nil {
			return nil, err
		}
		return &Glyph{Rect16: rect16, Data: *comp}, nil
	default:
		return nil, &parser.NotSupportedError{
			SubSystem: "glyf",
			Feature:   "negative contour count below -1",
		}
	}
}
