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

// Package markarray reads OpenType "Mark Array Tables", used by the
// mark-to-base, mark-to-ligature and mark-to-mark GPOS lookups.
package markarray

import (
	"github.com/cdelker/glyphpath/opentype/anchor"
	"github.com/cdelker/glyphpath/parser"
)

// Record is a mark record in a Mark Array Table.  Each mark record
// gives the mark class and the anchor point used to attach it.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#mark-array-table
type Record struct {
	Class uint16
	anchor.Table
}

// Read reads a Mark Array Table from the given parser.  If the table
// has more than numMarks entries, the remaining ones are ignored; this
// happens when the mark coverage table lists fewer glyphs than the
// array was built for.
func Read(p *parser.Parser, pos int64, numMarks int) ([]Record, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	markCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if int(markCount) > numMarks {
		markCount = uint16(numMarks)
	}

	res := make([]Record, markCount)
	offsets := make([]uint16, markCount)
	for i := 0; i < int(markCount); i++ {
		res[i].Class, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}

		offsets[i], err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}

	for i, offs := range offsets {
		res[i].Table, err = anchor.Read(p, pos+int64(offs))
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
