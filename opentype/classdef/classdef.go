// github.com/cdelker/glyphpath - a library for reading font files
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

// Package classdef reads OpenType "Class Definition Tables".
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#classDefTbl
package classdef

import (
	"fmt"

	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/parser"
)

// Table maps glyphs to class values.  Glyphs not present in the map
// belong to class 0.
type Table map[glyph.ID]uint16

// Read reads and decodes an OpenType "Class Definition Table" at pos.
func Read(p *parser.Parser, pos int64) (Table, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	version, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	switch version {
	case 1:
		startGlyphID, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		glyphCount, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		if int(startGlyphID)+int(glyphCount)-1 > 0xFFFF {
			return nil, &parser.InvalidFontError{
				SubSystem: "opentype/classdef",
				Reason:    "glyph count too large in class definition table",
			}
		}

		res := make(Table, glyphCount)
		for i := 0; i < int(glyphCount); i++ {
			classValue, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			if classValue != 0 {
				res[glyph.ID(startGlyphID)+glyph.ID(i)] = classValue
			}
		}
		return res, nil

	case 2:
		classRangeCount, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}

		res := Table{}
		var prevEnd glyph.ID
		for i := 0; i < int(classRangeCount); i++ {
			buf, err := p.ReadBytes(6)
			if err != nil {
				return nil, err
			}
			startGlyphID := glyph.ID(buf[0])<<8 | glyph.ID(buf[1])
			endGlyphID := glyph.ID(buf[2])<<8 | glyph.ID(buf[3])
			classValue := uint16(buf[4])<<8 | uint16(buf[5])

			if i > 0 && startGlyphID <= prevEnd {
				return nil, &parser.InvalidFontError{
					SubSystem: "opentype/classdef",
					Reason:    "overlapping ranges in class definition table",
				}
			}
			prevEnd = endGlyphID

			if classValue != 0 {
				for j := int(startGlyphID); j <= int(endGlyphID); j++ {
					res[glyph.ID(j)] = classValue
				}
			}
		}
		return res, nil

	default:
		return nil, &parser.NotSupportedError{
			SubSystem: "opentype/classdef",
			Feature:   fmt.Sprintf("class definition table version %d", version),
		}
	}
}
