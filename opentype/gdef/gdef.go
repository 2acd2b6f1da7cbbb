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

// Package gdef reads the OpenType "GDEF" (Glyph Definition) table.
package gdef

import (
	"fmt"

	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/opentype/classdef"
	"github.com/cdelker/glyphpath/opentype/coverage"
	"github.com/cdelker/glyphpath/parser"
)

// Table contains the parsed GDEF table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/GDEF
type Table struct {
	GlyphClass      classdef.Table // class definition table for glyph type
	MarkAttachClass classdef.Table // class definition table for mark attachment type
	MarkGlyphSets   []coverage.Set // table of mark glyph set definitions
}

// IsMark reports whether gid is classified as a combining mark glyph.
func (table *Table) IsMark(gid glyph.ID) bool {
	if table == nil || table.GlyphClass == nil {
		return false
	}
	return table.GlyphClass[gid] == GlyphClassMark
}

// Read reads the GDEF table.
func Read(r parser.ReadSeekSizer) (*Table, error) {
	p := parser.New(r)
	buf, err := p.ReadBytes(12)
	if err != nil {
		return nil, err
	}
	majorVersion := uint16(buf[0])<<8 | uint16(buf[1])
	minorVersion := uint16(buf[2])<<8 | uint16(buf[3])
	if majorVersion != 1 || (minorVersion != 0 && minorVersion != 2 && minorVersion != 3) {
		return nil, &parser.NotSupportedError{
			SubSystem: "opentype/gdef",
			Feature:   fmt.Sprintf("GDEF table version %d.%d", majorVersion, minorVersion),
		}
	}
	glyphClassDefOffset := uint16(buf[4])<<8 | uint16(buf[5])
	markAttachClassDefOffset := uint16(buf[10])<<8 | uint16(buf[11])
	// attachment point list and ligature caret list offsets (buf[6:10]) are
	// not needed by the decoder and layout engine and are ignored.
	var markGlyphSetsDefOffset uint16
	if minorVersion >= 2 {
		markGlyphSetsDefOffset, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}
	if minorVersion >= 3 {
		// item variation store offset; variable fonts are not supported.
		_, err = p.ReadUint32()
		if err != nil {
			return nil, err
		}
	}

	table := &Table{}

	if glyphClassDefOffset != 0 {
		table.GlyphClass, err = classdef.Read(p, int64(glyphClassDefOffset))
		if err != nil {
			return nil, err
		}
	}

	if markAttachClassDefOffset != 0 {
		table.MarkAttachClass, err = classdef.Read(p, int64(markAttachClassDefOffset))
		if err != nil {
			return nil, err
		}
	}

	if markGlyphSetsDefOffset != 0 {
		pos := int64(markGlyphSetsDefOffset)
		err = p.SeekPos(pos)
		if err != nil {
			return nil, err
		}
		buf, err := p.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		format := uint16(buf[0])<<8 | uint16(buf[1])
		if format != 1 {
			return nil, &parser.NotSupportedError{
				SubSystem: "opentype/gdef",
				Feature:   fmt.Sprintf("mark glyph sets format %d", format),
			}
		}
		markGlyphSetCount := uint16(buf[2])<<8 | uint16(buf[3])
		coverageOffsets := make([]uint32, markGlyphSetCount)
		for i := range coverageOffsets {
			coverageOffsets[i], err = p.ReadUint32()
			if err != nil {
				return nil, err
			}
		}

		table.MarkGlyphSets = make([]coverage.Set, markGlyphSetCount)
		for i := range table.MarkGlyphSets {
			table.MarkGlyphSets[i], err = coverage.ReadSet(p, pos+int64(coverageOffsets[i]))
			if err != nil {
				return nil, err
			}
		}
	}

	return table, nil
}

// Possible values for the GlyphClass field.
// https://docs.microsoft.com/en-us/typography/opentype/spec/GDEF#glyph-class-definition-table
const (
	GlyphClassBase      = 1
	GlyphClassLigature  = 2
	GlyphClassMark      = 3
	GlyphClassComponent = 4
)
