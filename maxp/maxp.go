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

// Package maxp reads "maxp" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
package maxp

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cdelker/glyphpath/parser"
)

// TTFInfo holds the TrueType-specific fields of a version 1.0 "maxp"
// table, describing the resources the font's outlines and hinting
// instructions require.
type TTFInfo struct {
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// Info contains information from the "maxp" table.
type Info struct {
	NumGlyphs int

	// TTF holds the extended, TrueType-only fields. It is nil for
	// version 0.5 tables, which CFF-flavoured OpenType fonts use.
	TTF *TTFInfo
}

type headerData struct {
	Version   uint32
	NumGlyphs uint16
}

// Read reads the "maxp" table from r.
func Read(r io.Reader) (*Info, error) {
	var hdr headerData
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	info := &Info{NumGlyphs: int(hdr.NumGlyphs)}

	switch hdr.Version {
	case 0x00005000:
		// version 0.5: no further fields

	case 0x00010000:
		var ttf TTFInfo
		if err := binary.Read(r, binary.BigEndian, &ttf); err != nil {
			return nil, err
		}
		info.TTF = &ttf

	default:
		return nil, &parser.NotSupportedError{
			SubSystem: "maxp",
			Feature:   fmt.Sprintf("table version %08x", hdr.Version),
		}
	}

	return info, nil
}
