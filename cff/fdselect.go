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

package cff

import (
	"fmt"
	"io"
	"sort"

	"github.com/cdelker/glyphpath/glyph"
	"github.com/cdelker/glyphpath/parser"
)

// FDSelectFn maps glyph ids to font dicts in Outlines.Private.
// CID-keyed fonts can use several private dicts; all other fonts map
// every glyph to dict 0.
type FDSelectFn func(glyph.ID) int

// readFDSelect reads an FDSelect table.  Format 0 stores one dict
// index per glyph, format 3 a list of glyph ranges.
func readFDSelect(p *parser.Parser, nGlyphs, nPrivate int) (FDSelectFn, error) {
	format, err := p.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch format {
	case 0:
		return readFDSelect0(p, nGlyphs, nPrivate)
	case 3:
		return readFDSelect3(p, nGlyphs, nPrivate)
	}
	return nil, unsupported(fmt.Sprintf("FDSelect format %d", format))
}

func readFDSelect0(p *parser.Parser, nGlyphs, nPrivate int) (FDSelectFn, error) {
	perGlyph := make([]uint8, nGlyphs)
	_, err := io.ReadFull(p, perGlyph)
	if err != nil {
		return nil, err
	}
	for _, fd := range perGlyph {
		if int(fd) >= nPrivate {
			return nil, invalidSince("FDSelect out of range")
		}
	}
	return func(gid glyph.ID) int {
		return int(perGlyph[gid])
	}, nil
}

// fdRange covers the glyphs from first up to the next range's first
// glyph (or the sentinel, for the last range).
type fdRange struct {
	first glyph.ID
	fd    int
}

func readFDSelect3(p *parser.Parser, nGlyphs, nPrivate int) (FDSelectFn, error) {
	nRanges, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if nGlyphs > 0 && nRanges == 0 {
		return nil, invalidSince("no FDSelect data found")
	}

	ranges := make([]fdRange, nRanges)
	for i := range ranges {
		first, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		if i == 0 && first != 0 || i > 0 && first <= uint16(ranges[i-1].first) {
			return nil, invalidSince("FDSelect is invalid")
		}
		fd, err := p.ReadUint8()
		if err != nil {
			return nil, err
		}
		if int(fd) >= nPrivate {
			return nil, invalidSince("FDSelect out of range")
		}
		ranges[i] = fdRange{first: glyph.ID(first), fd: int(fd)}
	}

	sentinel, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if int(sentinel) != nGlyphs {
		return nil, invalidSince("wrong FDSelect sentinel")
	}

	return func(gid glyph.ID) int {
		// the last range whose first glyph is not after gid
		idx := sort.Search(len(ranges), func(i int) bool {
			return ranges[i].first > gid
		}) - 1
		return ranges[idx].fd
	}, nil
}
