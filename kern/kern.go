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

// Package kern reads the legacy "kern" table, used as a fallback source
// of pair kerning when a font has no GPOS pair-adjustment lookups.
// https://docs.microsoft.com/en-us/typography/opentype/spec/kern
package kern

import (
	"fmt"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/parser"
)

// Info maps glyph pairs to a kerning adjustment. A positive value moves
// the pair apart, a negative value moves it closer together.
type Info map[glyph.Pair]funit.Int16

// Read reads the "kern" table. Only version 0 of the table, and format 0
// subtables with the "horizontal" and "has minimum" flag combinations
// defined by the spec, are supported; unsupported subtables are skipped.
func Read(r parser.ReadSeekSizer) (Info, error) {
	p := parser.New(r)

	version, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "kern",
			Feature:   fmt.Sprintf("\"kern\" table version %d", version),
		}
	}

	nTables, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	res := make(Info)

	pos := p.Pos()
	for i := 0; i < int(nTables); i++ {
		err := p.SeekPos(pos)
		if err != nil {
			return nil, err
		}
		buf, err := p.ReadBytes(6)
		if err != nil {
			return nil, err
		}
		subtableVersion := uint16(buf[0])<<8 | uint16(buf[1])
		length := uint16(buf[2])<<8 | uint16(buf[3])
		format := buf[4]
		flags := buf[5]

		if length < 6+8 {
			return nil, &parser.InvalidFontError{
				SubSystem: "kern",
				Reason:    fmt.Sprintf("invalid kern subtable length %d", length),
			}
		}
		pos += int64(length)

		if subtableVersion != 0 || format != 0 || flags&0b11110101 != 1 {
			continue
		}
		isMinimum := flags&0b00000010 != 0
		isOverride := flags&0b00001000 != 0

		nPairs, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		_, err = p.ReadBytes(6) // searchRange, entrySelector, rangeShift
		if err != nil {
			return nil, err
		}
		for j := 0; j < int(nPairs); j++ {
			buf, err := p.ReadBytes(6)
			if err != nil {
				return nil, err
			}
			left := glyph.ID(buf[0])<<8 | glyph.ID(buf[1])
			right := glyph.ID(buf[2])<<8 | glyph.ID(buf[3])
			value := funit.Int16(buf[4])<<8 | funit.Int16(buf[5])
			key := glyph.Pair{Left: left, Right: right}
			switch {
			case isMinimum:
				if res[key] < value {
					res[key] = value
				}
			case isOverride:
				res[key] = value
			default:
				res[key] += value
			}
		}
	}

	return res, nil
}
